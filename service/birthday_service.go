package service

import (
	"fmt"
	"sort"
	"time"

	"starosta/store"
)

type birthdayService struct {
	birthdays *store.BirthdayStore
}

// NewBirthdayService creates a new birthday service
func NewBirthdayService(birthdays *store.BirthdayStore) BirthdayService {
	return &birthdayService{birthdays: birthdays}
}

// Set validates the day/month pair against a real calendar date and stores
// it as "dd.mm". February 29 is accepted.
func (s *birthdayService) Set(userID string, day, month int) (string, error) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return "", &ValidationError{Reason: "invalid date, expected a real day and month"}
	}
	// time.Date normalizes overflow, so a rolled-over day means the pair was
	// not a real date in that month. 2024 keeps 29.02 valid.
	probe := time.Date(2024, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if probe.Day() != day || int(probe.Month()) != month {
		return "", &ValidationError{Reason: "invalid date, expected a real day and month"}
	}
	date := fmt.Sprintf("%02d.%02d", day, month)
	s.birthdays.Set(userID, date)
	return date, nil
}

func (s *birthdayService) Remove(userID string) error {
	if !s.birthdays.Remove(userID) {
		return ErrNotFound
	}
	return nil
}

func (s *birthdayService) All() []BirthdayEntry {
	entries := make([]BirthdayEntry, 0)
	for userID, date := range s.birthdays.All() {
		var day, month int
		if _, err := fmt.Sscanf(date, "%d.%d", &day, &month); err != nil {
			continue
		}
		entries = append(entries, BirthdayEntry{UserID: userID, Day: day, Month: month})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Month != entries[j].Month {
			return entries[i].Month < entries[j].Month
		}
		if entries[i].Day != entries[j].Day {
			return entries[i].Day < entries[j].Day
		}
		return entries[i].UserID < entries[j].UserID
	})
	return entries
}

func (s *birthdayService) DueToday(now time.Time) []string {
	today := fmt.Sprintf("%02d.%02d", now.Day(), int(now.Month()))
	var ids []string
	for userID, date := range s.birthdays.All() {
		if date == today {
			ids = append(ids, userID)
		}
	}
	sort.Strings(ids)
	return ids
}
