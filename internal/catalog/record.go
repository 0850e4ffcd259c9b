package catalog

import "marquee/internal/catalog/tmdb"

// Record is the metadata used to build an announcement.
type Record struct {
	ID               int64
	Title            string
	ReleaseDate      string
	Rating           tmdb.Rating
	Overview         string
	PosterPath       string
	OriginalLanguage string
}

func recordFromMovie(movie *tmdb.Movie) *Record {
	return &Record{
		ID:               movie.ID,
		Title:            movie.Title,
		ReleaseDate:      movie.ReleaseDate,
		Rating:           movie.VoteAverage,
		Overview:         movie.Overview,
		PosterPath:       movie.PosterPath,
		OriginalLanguage: movie.OriginalLanguage,
	}
}
