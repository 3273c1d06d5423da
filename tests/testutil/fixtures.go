package testutil

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v7"
)

// Faker is seeded once so fixture values differ between runs but stay valid.
var Faker = gofakeit.New(0)

// ExternalUserID returns an identity-provider style user id
func ExternalUserID() string {
	return "user_" + Faker.LetterN(24)
}

// PersonName returns a first and last name
func PersonName() (first, last string) {
	return Faker.FirstName(), Faker.LastName()
}

// Email returns a fake email address
func Email() string {
	return Faker.Email()
}

// Phone returns a fake phone number
func Phone() string {
	return Faker.Phone()
}

// Company returns a fake business name
func Company() string {
	return Faker.Company()
}

// Day returns a date in 2024 as YYYY-MM-DD
func Day(month, day int) string {
	return fmt.Sprintf("2024-%02d-%02d", month, day)
}

// Sentence returns short filler text
func Sentence() string {
	return Faker.Sentence(6)
}
