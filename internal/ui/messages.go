package ui

import (
	"atelier/internal/domain"
	"atelier/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// slidesLoadedMsg carries the result of an asynchronous catalogue fetch
type slidesLoadedMsg struct {
	gen    uint64
	slides []domain.Slide
	err    error
}

// scrollTickMsg advances a smooth page scroll
type scrollTickMsg struct {
	gen uint64
}

// clearStatusMsg clears the footer status if it is still the same message
type clearStatusMsg struct {
	seq uint64
}
