package catalog

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"atelier/internal/domain"
	"atelier/internal/progress"
)

// seedFile is the on-disk YAML layout.
//
//	artworks:
//	  - title: Nocturne in Ochre
//	    collection: Paintings
//	    price: 1800
//	    image: nocturne.jpg
//	    story: |
//	      Oil on linen...
type seedFile struct {
	Artworks []seedArtwork `yaml:"artworks"`
}

type seedArtwork struct {
	ID         string  `yaml:"id,omitempty"`
	Title      string  `yaml:"title"`
	Collection string  `yaml:"collection,omitempty"`
	Story      string  `yaml:"story,omitempty"`
	Price      float64 `yaml:"price,omitempty"`
	Image      string  `yaml:"image,omitempty"`
}

// LoadSeed parses a seed file. Positions follow file order.
func LoadSeed(path string) ([]domain.Artwork, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed %s: %w", path, err)
	}
	return ParseSeed(data)
}

// ParseSeed parses seed YAML.
func ParseSeed(data []byte) ([]domain.Artwork, error) {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing seed: %w", err)
	}

	artworks := make([]domain.Artwork, 0, len(f.Artworks))
	ids := make(map[string]bool)
	for i, s := range f.Artworks {
		title := strings.TrimSpace(s.Title)
		if title == "" {
			return nil, fmt.Errorf("seed entry %d: title is required", i+1)
		}
		if s.Price < 0 {
			return nil, fmt.Errorf("seed entry %d (%s): price must not be negative", i+1, title)
		}
		id := strings.TrimSpace(s.ID)
		if id != "" && ids[id] {
			return nil, fmt.Errorf("seed entry %d (%s): duplicate id %s", i+1, title, id)
		}
		ids[id] = true
		artworks = append(artworks, domain.Artwork{
			ID:         id,
			Title:      title,
			Collection: strings.TrimSpace(s.Collection),
			Story:      s.Story,
			Price:      s.Price,
			ImageRef:   s.Image,
			Position:   i,
		})
	}
	return artworks, nil
}

// ImportResult summarises an Import.
type ImportResult struct {
	Created   int
	Updated   int
	Unchanged int
	Removed   int
}

// Changed reports whether the import modified the catalogue.
func (r ImportResult) Changed() bool {
	return r.Created+r.Updated+r.Removed > 0
}

// Import merges artworks into the store in a single transaction. Entries
// match existing rows by id, or by case-insensitive title when the seed gives
// no id; each row is matched at most once, in display order. With prune set,
// rows absent from artworks are deleted. On error nothing is written.
func Import(ctx context.Context, store *Store, artworks []domain.Artwork, prune bool, reporter progress.Reporter) (ImportResult, error) {
	if reporter == nil {
		reporter = progress.Nop{}
	}
	var res ImportResult

	tx, err := store.Begin(ctx)
	if err != nil {
		return res, err
	}
	defer tx.Rollback() //nolint:errcheck

	existing, err := tx.List(ctx)
	if err != nil {
		return res, err
	}
	matches, err := matchExisting(existing, artworks)
	if err != nil {
		return res, err
	}

	reporter.Start(len(artworks))
	defer reporter.Finish()

	seen := make(map[string]bool, len(artworks))
	for i, a := range artworks {
		if err := ctx.Err(); err != nil {
			return ImportResult{}, err
		}

		prev, found := matches[i]
		if found {
			a.ID = prev.ID
		}

		switch {
		case !found:
			res.Created++
		case sameContent(prev, a):
			res.Unchanged++
			seen[prev.ID] = true
			reporter.Update(i+1, a.Title)
			continue
		default:
			res.Updated++
		}

		saved, err := tx.Upsert(ctx, a)
		if err != nil {
			return ImportResult{}, err
		}
		seen[saved.ID] = true
		reporter.Update(i+1, a.Title)
	}

	if prune {
		for _, a := range existing {
			if seen[a.ID] {
				continue
			}
			if err := tx.Delete(ctx, a.ID); err != nil {
				return ImportResult{}, err
			}
			res.Removed++
		}
	}

	if err := tx.Commit(); err != nil {
		return ImportResult{}, err
	}
	return res, nil
}

// matchExisting pairs seed entries with stored rows. Explicit ids are
// claimed first so a title match never steals a row another entry names.
func matchExisting(existing, artworks []domain.Artwork) (map[int]domain.Artwork, error) {
	byID := make(map[string]domain.Artwork, len(existing))
	byTitle := make(map[string][]domain.Artwork, len(existing))
	for _, a := range existing {
		byID[a.ID] = a
		key := strings.ToLower(a.Title)
		byTitle[key] = append(byTitle[key], a)
	}

	matches := make(map[int]domain.Artwork, len(artworks))
	claimed := make(map[string]bool, len(existing))
	named := make(map[string]bool)
	for i, a := range artworks {
		if a.ID == "" {
			continue
		}
		if named[a.ID] {
			return nil, fmt.Errorf("artwork id %s appears more than once", a.ID)
		}
		named[a.ID] = true
		if prev, ok := byID[a.ID]; ok {
			matches[i] = prev
			claimed[prev.ID] = true
		}
	}

	for i, a := range artworks {
		if a.ID != "" {
			continue
		}
		key := strings.ToLower(a.Title)
		for _, prev := range byTitle[key] {
			if claimed[prev.ID] {
				continue
			}
			matches[i] = prev
			claimed[prev.ID] = true
			break
		}
	}
	return matches, nil
}

func sameContent(a, b domain.Artwork) bool {
	return a.Title == b.Title &&
		a.Collection == b.Collection &&
		a.Story == b.Story &&
		a.Price == b.Price &&
		a.ImageRef == b.ImageRef &&
		a.Position == b.Position
}
