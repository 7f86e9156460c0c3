package model

// Show is the locally cached record for one tracked series. Metadata fields
// are denormalized from the provider on add and only refreshed by an explicit
// season refresh; the local copy is authoritative once fetched.
type Show struct {
	ImdbID       string         `bson:"imdbId" json:"imdbId"`
	Title        string         `bson:"title" json:"title"`
	Thumbnail    string         `bson:"thumbnail,omitempty" json:"thumbnail,omitempty"`
	ImdbURL      string         `bson:"imdbUrl" json:"imdbUrl"`
	ReleaseYear  string         `bson:"releaseYear,omitempty" json:"releaseYear,omitempty"`
	MainCast     []string       `bson:"mainCast,omitempty" json:"mainCast,omitempty"`
	Plot         string         `bson:"plot,omitempty" json:"plot,omitempty"`
	TotalSeasons *int           `bson:"totalSeasons,omitempty" json:"totalSeasons,omitempty"`
	NextAirDate  string         `bson:"nextAirDate,omitempty" json:"nextAirDate,omitempty"`
	Seasons      []Season       `bson:"seasons" json:"seasons"`
	Rating       *float64       `bson:"rating,omitempty" json:"rating,omitempty"`
	Genres       []string       `bson:"genres,omitempty" json:"genres,omitempty"`
	ReleaseDate  string         `bson:"releaseDate,omitempty" json:"releaseDate,omitempty"`
	Votes        *int           `bson:"votes,omitempty" json:"votes,omitempty"`
	Awards       string         `bson:"awards,omitempty" json:"awards,omitempty"`
	Rated        string         `bson:"rated,omitempty" json:"rated,omitempty"`
	Runtime      string         `bson:"runtime,omitempty" json:"runtime,omitempty"`
	Director     string         `bson:"director,omitempty" json:"director,omitempty"`
	Writer       string         `bson:"writer,omitempty" json:"writer,omitempty"`
	Language     string         `bson:"language,omitempty" json:"language,omitempty"`
	Country      string         `bson:"country,omitempty" json:"country,omitempty"`
	Metascore    string         `bson:"metascore,omitempty" json:"metascore,omitempty"`
	Ratings      []SourceRating `bson:"ratings,omitempty" json:"ratings,omitempty"`

	HideWatched bool `bson:"hideWatched,omitempty" json:"hideWatched,omitempty"`

	// Tentative scheduling, user-entered. A show without a baseline date and
	// a frequency produces no reminders.
	TentativeNextAirDate   string      `bson:"tentativeNextAirDate,omitempty" json:"tentativeNextAirDate,omitempty"`
	TentativeNextEpisode   *EpisodeRef `bson:"tentativeNextEpisode,omitempty" json:"tentativeNextEpisode,omitempty"`
	TentativeFrequencyDays int         `bson:"tentativeFrequencyDays,omitempty" json:"tentativeFrequencyDays,omitempty"`
}

// SourceRating is a rating from one review source, e.g. {"Rotten Tomatoes", "89%"}.
// Key casing follows the provider's response so exported documents stay
// compatible with it.
type SourceRating struct {
	Source string `bson:"Source" json:"Source"`
	Value  string `bson:"Value" json:"Value"`
}

// EpisodeRef addresses one episode within a show by season and episode number.
type EpisodeRef struct {
	SeasonNumber  int `bson:"seasonNumber" json:"seasonNumber"`
	EpisodeNumber int `bson:"episodeNumber" json:"episodeNumber"`
}

type Season struct {
	Title        string    `bson:"title" json:"title"`
	SeasonNumber int       `bson:"seasonNumber,omitempty" json:"seasonNumber,omitempty"`
	ReleaseDate  string    `bson:"releaseDate,omitempty" json:"releaseDate,omitempty"`
	Summary      string    `bson:"summary,omitempty" json:"summary,omitempty"`
	Episodes     []Episode `bson:"episodes" json:"episodes"`
}

// Episode metadata is overwritten wholesale on a season refresh; Watched is
// the only field the user mutates and is preserved across refreshes.
type Episode struct {
	Title          string `bson:"title" json:"title"`
	ReleaseDate    string `bson:"releaseDate,omitempty" json:"releaseDate,omitempty"`
	Summary        string `bson:"summary,omitempty" json:"summary,omitempty"`
	RuntimeMinutes int    `bson:"runtimeMinutes,omitempty" json:"runtimeMinutes,omitempty"`
	EpisodeNumber  int    `bson:"episodeNumber,omitempty" json:"episodeNumber,omitempty"`
	Watched        bool   `bson:"watched,omitempty" json:"watched,omitempty"`
	Rating         string `bson:"rating,omitempty" json:"rating,omitempty"`
	ImdbURL        string `bson:"imdbUrl,omitempty" json:"imdbUrl,omitempty"`
	ImdbID         string `bson:"imdbId,omitempty" json:"imdbId,omitempty"`
}

// SeasonByNumber returns the season with the given number, if present.
func (s Show) SeasonByNumber(n int) (Season, bool) {
	for _, sn := range s.Seasons {
		if sn.SeasonNumber == n {
			return sn, true
		}
	}
	return Season{}, false
}

// ImdbTitleURL builds the canonical IMDb URL for an id.
func ImdbTitleURL(imdbID string) string {
	return "https://www.imdb.com/title/" + imdbID
}
