package integration_test

const (
	TestMovieName     = "Heat"
	TestMovieDate     = "1995-12-15"
	TestMovieOverview = "A group of professional bank robbers start to feel the heat from police."
	TestMovieStatus   = "Released"
	TestMovieScore    = 82.5
	TestMovieBudget   = 60000000
	TestMovieRevenue  = 187436818.25
	TestMovieCountry  = "US"
)

var (
	TestMovieGenres    = []string{"Action", "Drama"}
	TestMovieActors    = []string{"Al Pacino", "Robert De Niro"}
	TestMovieLanguages = []string{"English"}
)
