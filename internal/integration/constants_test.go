package integration_test

const (
	dbName         = "cinehall"
	dbUser         = "test_user"
	dbPassword     = "test_password"
	dbImageName    = "postgres:17-alpine"
	cacheImageName = "redis:7"

	// Ids assigned by the testdata seed files.
	TestCinemaId  = 1
	TestHallId    = 1
	TestMovieId   = 1
	TestSessionId = 1
)
