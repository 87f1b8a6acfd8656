package service

import (
	"fmt"
	"strings"
	"time"
)

// DaysInWeek is the length of every plan
const DaysInWeek = 7

// MondayOf returns midnight of the Monday on or before t, in t's location
func MondayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// calendarDate keeps the year, month and day of t and places them at
// midnight in loc
func calendarDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// MealSlot is one of the fixed meal times of a day
type MealSlot string

const (
	Breakfast MealSlot = "breakfast"
	Lunch     MealSlot = "lunch"
	Dinner    MealSlot = "dinner"
)

// MealSlots lists the slots in the order they appear within a day
var MealSlots = []MealSlot{Breakfast, Lunch, Dinner}

// ParseMealSlot accepts a slot name in any case
func ParseMealSlot(s string) (MealSlot, error) {
	switch slot := MealSlot(strings.ToLower(strings.TrimSpace(s))); slot {
	case Breakfast, Lunch, Dinner:
		return slot, nil
	default:
		return "", fmt.Errorf("unknown meal slot %q", s)
	}
}

// order is the position of the slot within a day
func (s MealSlot) order() int {
	for i, slot := range MealSlots {
		if slot == s {
			return i
		}
	}
	return len(MealSlots)
}
