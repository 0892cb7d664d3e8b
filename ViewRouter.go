package main

import (
	"errors"
	"fmt"
	"sync"
)

var ErrUnknownSection = errors.New("unknown section")

var ErrUnknownPanel = errors.New("unknown panel")

type SectionChangeListener func(previous string, current string)

type ViewRouterInterface interface {
	ShowSection(id string) error
	ToggleSection(id string) (bool, error)
	ActiveSection() string
	IsExpanded(id string) bool
	OnChange(listener SectionChangeListener)
}

type ViewRouter struct {
	mutex     sync.RWMutex
	active    map[string]bool
	expanded  map[string]bool
	listeners []SectionChangeListener
}

func NewViewRouter() *ViewRouter {
	router := &ViewRouter{
		active:   make(map[string]bool, len(allSections)),
		expanded: make(map[string]bool, len(allPanels)),
	}

	for _, section := range allSections {
		router.active[section] = false
	}
	for _, panel := range allPanels {
		router.expanded[panel] = false
	}
	router.active[LoginSection] = true

	return router
}

func (router *ViewRouter) ShowSection(id string) error {
	router.mutex.Lock()
	if _, known := router.active[id]; !known {
		router.mutex.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownSection, id)
	}

	previous := router.activeLocked()
	for section := range router.active {
		router.active[section] = false
	}
	router.active[id] = true

	listeners := append([]SectionChangeListener(nil), router.listeners...)
	router.mutex.Unlock()

	if previous != id {
		for _, listener := range listeners {
			listener(previous, id)
		}
	}

	return nil
}

// ToggleSection flips an expandable panel; the active main section is not affected.
func (router *ViewRouter) ToggleSection(id string) (bool, error) {
	router.mutex.Lock()
	defer router.mutex.Unlock()

	expanded, known := router.expanded[id]
	if !known {
		return false, fmt.Errorf("%w: %s", ErrUnknownPanel, id)
	}

	router.expanded[id] = !expanded

	return !expanded, nil
}

func (router *ViewRouter) ActiveSection() string {
	router.mutex.RLock()
	defer router.mutex.RUnlock()

	return router.activeLocked()
}

func (router *ViewRouter) ActiveSections() []string {
	router.mutex.RLock()
	defer router.mutex.RUnlock()

	var sections []string
	for _, section := range allSections {
		if router.active[section] {
			sections = append(sections, section)
		}
	}

	return sections
}

func (router *ViewRouter) IsExpanded(id string) bool {
	router.mutex.RLock()
	defer router.mutex.RUnlock()

	return router.expanded[id]
}

func (router *ViewRouter) OnChange(listener SectionChangeListener) {
	router.mutex.Lock()
	router.listeners = append(router.listeners, listener)
	router.mutex.Unlock()
}

func (router *ViewRouter) activeLocked() string {
	for _, section := range allSections {
		if router.active[section] {
			return section
		}
	}

	return ""
}
