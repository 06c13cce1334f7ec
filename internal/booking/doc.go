// Package booking implements the appointment engine's three operations:
// fetching bookable slots for a day, checking whether a specific slot is
// still free, and booking a slot.
//
// Booking always re-derives the day's busy intervals from a fresh backend
// fetch before creating the event, so a slot that was listed earlier but has
// since been taken fails with a conflict instead of double-booking. The
// re-check is best-effort: a race remains possible between the check and the
// remote create, and the backend's create call stays the authority of record.
package booking
