package integration_test

const (
	// Film related constants
	TestFilmId       = "inception"
	TestFilmTitle    = "Inception"
	TestFilmRating   = 8.8
	TestFilmDirector = "Christopher Nolan"
	TestFilmAbout    = "A thief who steals corporate secrets through dream-sharing technology."

	// Screening related constants
	TestScreeningId      = "evening-1"
	TestScreeningDaytime = "2026-09-12T20:30:00Z"
	TestScreeningHall    = 2
	TestScreeningRows    = 10
	TestScreeningSeats   = 12
	TestScreeningPrice   = "350"

	// Order related constants
	TestOrderEmail = "moviegoer@example.com"
	TestOrderPhone = "+905551234567"
)

var TestFilmTags = []string{"Sci-Fi", "Thriller"}
