package models

import "time"

// Employee is the full profile view of an employee row. ProfilePicture holds
// the object-storage key of the profile picture, empty when none is set.
// Nullable date columns are pointers so a missing value survives round trips.
type Employee struct {
	ID          int64
	Username    string
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	DateOfBirth *time.Time
	Gender      string
	Address     string
	City        string
	State       string
	Country     string
	ZipCode     string
	Department  string
	JobTitle    string
	Salary      float64
	HireDate    *time.Time

	ProfilePicture string
	CreatedAt      time.Time
}
