// Package catalog defines the canonical media entities and the client for the remote catalog service.
package catalog

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/samber/mo"
)

// The catalog service is not consistent about field names and payload
// shapes across endpoints. Everything below this line exists to convert the
// raw wire forms into the canonical entities; raw shapes never leave this
// package.

type rawImage struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

func (r *rawImage) normalize() mo.Option[Image] {
	if r == nil || r.URL == "" {
		return mo.None[Image]()
	}
	return mo.Some(Image{URL: r.URL, Width: r.Width, Height: r.Height})
}

type rawRating struct {
	AggregateRating float64 `json:"aggregateRating"`
	VoteCount       int     `json:"voteCount"`
}

func (r *rawRating) normalize() mo.Option[Rating] {
	if r == nil {
		return mo.None[Rating]()
	}
	return mo.Some(Rating{Aggregate: r.AggregateRating, Votes: r.VoteCount})
}

type rawTitle struct {
	ID             string    `json:"id"`
	Type           string    `json:"type"`
	PrimaryTitle   string    `json:"primaryTitle"`
	OriginalTitle  string    `json:"originalTitle"`
	StartYear      int       `json:"startYear"`
	RuntimeSeconds int       `json:"runtimeSeconds"`
	Genres         []string  `json:"genres"`
	PrimaryImage   *rawImage `json:"primaryImage"`
	Rating         *rawRating `json:"rating"`
	Plot           string    `json:"plot"`
}

func (r rawTitle) normalize() Title {
	kind, _ := ParseKind(r.Type)
	return Title{
		ID:             r.ID,
		Kind:           kind,
		PrimaryTitle:   r.PrimaryTitle,
		OriginalTitle:  r.OriginalTitle,
		StartYear:      r.StartYear,
		RuntimeSeconds: r.RuntimeSeconds,
		Genres:         r.Genres,
		Poster:         r.PrimaryImage.normalize(),
		Rating:         r.Rating.normalize(),
		Plot:           r.Plot,
	}
}

type rawEpisode struct {
	ID string `json:"id"`

	// The season arrives under three different names and as either a
	// number or a string depending on the endpoint revision.
	Season       json.RawMessage `json:"season"`
	SeasonNumber json.RawMessage `json:"seasonNumber"`
	SeasonUpper  json.RawMessage `json:"SeasonNumber"`

	EpisodeNumber  int        `json:"episodeNumber"`
	Title          string     `json:"title"`
	Plot           string     `json:"plot"`
	RuntimeSeconds int        `json:"runtimeSeconds"`
	Rating         *rawRating `json:"rating"`
	PrimaryImage   *rawImage  `json:"primaryImage"`
}

func (r rawEpisode) normalize() Episode {
	season := 1
	for _, candidate := range []json.RawMessage{r.Season, r.SeasonNumber, r.SeasonUpper} {
		if n, ok := coerceInt(candidate); ok && n > 0 {
			season = n
			break
		}
	}

	return Episode{
		ID:             r.ID,
		Season:         season,
		Number:         r.EpisodeNumber,
		Title:          r.Title,
		Plot:           r.Plot,
		RuntimeSeconds: r.RuntimeSeconds,
		Rating:         r.Rating.normalize(),
		Image:          r.PrimaryImage.normalize(),
	}
}

// coerceInt extracts an integer from a raw JSON value that may be encoded
// as a number or as a numeric string.
func coerceInt(raw json.RawMessage) (int, bool) {
	if len(raw) == 0 {
		return 0, false
	}

	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, true
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return n, true
		}
	}

	return 0, false
}

type rawCredit struct {
	Category string `json:"category"`
	Name     struct {
		ID                 string    `json:"id"`
		DisplayName        string    `json:"displayName"`
		PrimaryImage       *rawImage `json:"primaryImage"`
		PrimaryProfessions []string  `json:"primaryProfessions"`
	} `json:"name"`
	Characters   []string `json:"characters"`
	EpisodeCount int      `json:"episodeCount"`
}

func (r rawCredit) normalize() Credit {
	return Credit{
		Category: r.Category,
		Person: Person{
			ID:          r.Name.ID,
			DisplayName: r.Name.DisplayName,
			Image:       r.Name.PrimaryImage.normalize(),
			Professions: r.Name.PrimaryProfessions,
		},
		Characters:   r.Characters,
		EpisodeCount: r.EpisodeCount,
	}
}

// TitlePage is one cursor page of titles. A zero NextToken means no
// further pages exist.
type TitlePage struct {
	Titles    []Title
	NextToken string
}

// EpisodePage is one cursor page of episodes.
type EpisodePage struct {
	Episodes  []Episode
	NextToken string
}

// CreditPage is one cursor page of credits. Total is best-effort display
// data only; several upstream revisions report it in different places and
// some not at all.
type CreditPage struct {
	Credits   []Credit
	NextToken string
	Total     mo.Option[int]
}

func decodeTitlePage(data []byte) (TitlePage, error) {
	var payload struct {
		Titles        []rawTitle `json:"titles"`
		NextPageToken string     `json:"nextPageToken"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return TitlePage{}, err
	}

	return TitlePage{
		Titles:    lo.Map(payload.Titles, func(r rawTitle, _ int) Title { return r.normalize() }),
		NextToken: payload.NextPageToken,
	}, nil
}

func decodeEpisodePage(data []byte) (EpisodePage, error) {
	var payload struct {
		Episodes      []rawEpisode `json:"episodes"`
		NextPageToken string       `json:"nextPageToken"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return EpisodePage{}, err
	}

	return EpisodePage{
		Episodes:  lo.Map(payload.Episodes, func(r rawEpisode, _ int) Episode { return r.normalize() }),
		NextToken: payload.NextPageToken,
	}, nil
}

func decodeCreditPage(data []byte) (CreditPage, error) {
	var payload struct {
		Credits       []rawCredit `json:"credits"`
		Cast          []rawCredit `json:"cast"`
		NextPageToken string      `json:"nextPageToken"`
		TotalCredits  *int        `json:"totalCredits"`
		Total         *int        `json:"total"`
		Count         *int        `json:"count"`
		Pagination    struct {
			Total *int `json:"total"`
		} `json:"pagination"`
		Meta struct {
			Total *int `json:"total"`
		} `json:"meta"`
	}

	if err := json.Unmarshal(data, &payload); err != nil {
		// Some revisions return the credit list as a bare array.
		var bare []rawCredit
		if err := json.Unmarshal(data, &bare); err != nil {
			return CreditPage{}, err
		}
		return CreditPage{
			Credits: lo.Map(bare, func(r rawCredit, _ int) Credit { return r.normalize() }),
			Total:   mo.None[int](),
		}, nil
	}

	chunk := payload.Credits
	if len(chunk) == 0 {
		chunk = payload.Cast
	}

	total := mo.None[int]()
	for _, candidate := range []*int{
		payload.TotalCredits,
		payload.Total,
		payload.Count,
		payload.Pagination.Total,
		payload.Meta.Total,
	} {
		if candidate != nil && *candidate >= 0 {
			total = mo.Some(*candidate)
			break
		}
	}

	return CreditPage{
		Credits:   lo.Map(chunk, func(r rawCredit, _ int) Credit { return r.normalize() }),
		NextToken: payload.NextPageToken,
		Total:     total,
	}, nil
}

// decodeInterests accepts both documented interest payload shapes (a wrapped
// object and a bare array) plus both item shapes (a plain string and an
// object carrying name/title/id) and returns a sorted, de-duplicated list.
func decodeInterests(data []byte) ([]string, error) {
	var items []json.RawMessage

	var wrapped struct {
		Interests []json.RawMessage `json:"interests"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Interests != nil {
		items = wrapped.Interests
	} else if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(items))
	var names []string
	push := func(name string) {
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			push(s)
			continue
		}

		var obj struct {
			Name  string `json:"name"`
			Title string `json:"title"`
			ID    string `json:"id"`
		}
		if err := json.Unmarshal(item, &obj); err == nil {
			switch {
			case obj.Name != "":
				push(obj.Name)
			case obj.Title != "":
				push(obj.Title)
			default:
				push(obj.ID)
			}
		}
	}

	sort.Strings(names)
	return names, nil
}
