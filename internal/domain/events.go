package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventCatalogChanged      EventType = "CatalogChanged"
	EventSlidesLoaded        EventType = "SlidesLoaded"
	EventCarouselActivated   EventType = "CarouselActivated"
	EventCarouselDeactivated EventType = "CarouselDeactivated"
	EventSlideChanged        EventType = "SlideChanged"
	EventSectionExited       EventType = "SectionExited"
	EventError               EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// CatalogChangedEvent is emitted after the catalogue was re-imported from its seed file
type CatalogChangedEvent struct {
	Source  string
	Created int
	Updated int
	Removed int
}

func (e CatalogChangedEvent) Type() EventType { return EventCatalogChanged }

// SlidesLoadedEvent is emitted when the gallery received a fresh slide list
type SlidesLoadedEvent struct {
	Count int
}

func (e SlidesLoadedEvent) Type() EventType { return EventSlidesLoaded }

// CarouselActivatedEvent is emitted when the carousel starts capturing input
type CarouselActivatedEvent struct {
	Index int
}

func (e CarouselActivatedEvent) Type() EventType { return EventCarouselActivated }

// CarouselDeactivatedEvent is emitted when the carousel releases input
type CarouselDeactivatedEvent struct {
	Index int
}

func (e CarouselDeactivatedEvent) Type() EventType { return EventCarouselDeactivated }

// SlideChangedEvent is emitted when the active slide index changes
type SlideChangedEvent struct {
	OldIndex int
	NewIndex int
	SlideID  string
}

func (e SlideChangedEvent) Type() EventType { return EventSlideChanged }

// SectionExitedEvent is emitted when the carousel hands control back to the page
type SectionExitedEvent struct {
	Direction string // "next" or "prev"
}

func (e SectionExitedEvent) Type() EventType { return EventSectionExited }

// ErrorEvent is emitted when a background operation fails
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
