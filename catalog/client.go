package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/hydra-cli/hydra/internal/cache"
	"github.com/hydra-cli/hydra/key"
	"github.com/hydra-cli/hydra/log"
	"github.com/hydra-cli/hydra/network"
	"github.com/hydra-cli/hydra/query"
	"github.com/hydra-cli/hydra/util"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// ErrNotFound reports that the catalog has no record of the requested title.
var ErrNotFound = errors.New("title not found")

const (
	// EpisodePageSize is the fixed page size requested for episode listings.
	EpisodePageSize = 50

	// CreditPageSize is the fixed page size requested for credit listings.
	CreditPageSize = 50
)

// baseURL returns the configured catalog service endpoint without a trailing slash.
func baseURL() string {
	return strings.TrimSuffix(viper.GetString(key.CatalogBaseURL), "/")
}

// fetch performs a GET against the catalog service and returns the raw body.
func fetch(endpoint string, params url.Values) ([]byte, error) {
	target := baseURL() + endpoint
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	log.Infof("Sending request to catalog: %s", target)
	req, err := http.NewRequest(http.MethodGet, target, nil)
	if err != nil {
		log.Error(err)
		return nil, err
	}

	req.Header.Set("Accept", "application/json")

	resp, err := network.Client.Do(req)
	if err != nil {
		log.Error(err)
		return nil, err
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}

	if resp.StatusCode != http.StatusOK {
		log.Error("Catalog returned status code " + strconv.Itoa(resp.StatusCode))
		return nil, fmt.Errorf("invalid response code %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error(err)
		return nil, err
	}

	return body, nil
}

// ListTitles fetches one page of titles matching the given query parameters.
// An empty token requests the first page.
func ListTitles(params url.Values, token string) (TitlePage, error) {
	merged := url.Values{}
	for k, vs := range params {
		merged[k] = vs
	}
	if token != "" {
		merged.Set("pageToken", token)
	}

	body, err := fetch("/titles", merged)
	if err != nil {
		return TitlePage{}, err
	}

	page, err := decodeTitlePage(body)
	if err != nil {
		log.Error(err)
		return TitlePage{}, err
	}

	log.Infof("Got response from catalog, found %d titles", len(page.Titles))
	for _, title := range page.Titles {
		_ = titleCacher.Set(title.ID, &title)
	}

	return page, nil
}

// SearchTitles returns titles matching the given free-text query.
func SearchTitles(search string) ([]*Title, error) {
	search = normalizedQuery(search)
	_ = query.Remember(search, 1)

	if _, failed := failCacher.Get(search).Get(); failed {
		return nil, fmt.Errorf("failed to search for %s", search)
	}

	if ids, ok := searchCacher.Get(search).Get(); ok {
		// A cached empty id list records a query that legitimately
		// matched nothing; only a non-empty list that no longer
		// resolves means the title cache expired underneath it.
		if len(ids) == 0 {
			return nil, nil
		}

		titles := lo.FilterMap(ids, func(id string, _ int) (*Title, bool) {
			return titleCacher.Get(id).Get()
		})

		if len(titles) == 0 {
			_ = searchCacher.Delete(search)
			return SearchTitles(search)
		}

		return titles, nil
	}

	log.Infof("Searching catalog for %s", search)
	params := url.Values{}
	params.Set("query", search)
	params.Set("limit", strconv.Itoa(viper.GetInt(key.CatalogPageLimit)))

	body, err := fetch("/search/titles", params)
	if err != nil {
		_ = failCacher.Set(search, true)
		return nil, err
	}

	page, err := decodeTitlePage(body)
	if err != nil {
		log.Error(err)
		return nil, err
	}

	log.Infof("Got response from catalog, found %d results", len(page.Titles))
	ids := make([]string, len(page.Titles))
	titles := make([]*Title, len(page.Titles))
	for i := range page.Titles {
		title := page.Titles[i]
		ids[i] = title.ID
		titles[i] = &title
		_ = titleCacher.Set(title.ID, &title)
	}
	_ = searchCacher.Set(search, ids)
	return titles, nil
}

// GetByID returns the title with the given id. The catalog service has
// shipped three different lookup routes over time, so each is tried in
// turn until one yields a record.
func GetByID(id string) (*Title, error) {
	if title := titleCacher.Get(id); title.IsPresent() {
		return title.MustGet(), nil
	}

	log.Infof("Looking up catalog title %s", id)
	candidates := []func() ([]byte, error){
		func() ([]byte, error) {
			return fetch("/titles/"+url.PathEscape(id), nil)
		},
		func() ([]byte, error) {
			return fetch("/titles", url.Values{"id": {id}})
		},
		func() ([]byte, error) {
			return fetch("/titles", url.Values{"ids": {id}})
		},
	}

	for _, candidate := range candidates {
		body, err := candidate()
		if err != nil {
			continue
		}

		title, ok := decodeSingleTitle(body, id)
		if !ok {
			continue
		}

		log.Infof("Got response from catalog, found title %s", title.ID)
		_ = titleCacher.Set(id, &title)
		return &title, nil
	}

	return nil, ErrNotFound
}

// decodeSingleTitle extracts the title with the requested id from a
// lookup payload that may be wrapped as {title: ...}, {titles: [...]},
// or a bare title object. The plain list route ignores unknown query
// params and answers with an unrelated page, so only an exact id match
// counts as found.
func decodeSingleTitle(data []byte, id string) (Title, bool) {
	var wrapped struct {
		Title  *rawTitle  `json:"title"`
		Titles []rawTitle `json:"titles"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil {
		if wrapped.Title != nil && wrapped.Title.ID == id {
			return wrapped.Title.normalize(), true
		}
		for _, raw := range wrapped.Titles {
			if raw.ID == id {
				return raw.normalize(), true
			}
		}
	}

	var bare rawTitle
	if err := json.Unmarshal(data, &bare); err == nil && bare.ID == id {
		return bare.normalize(), true
	}

	return Title{}, false
}

// Episodes fetches one page of episodes for the given series.
// An empty token requests the first page.
func Episodes(id, token string) (EpisodePage, error) {
	params := url.Values{}
	params.Set("pageSize", strconv.Itoa(EpisodePageSize))
	if token != "" {
		params.Set("pageToken", token)
	}

	body, err := fetch("/titles/"+url.PathEscape(id)+"/episodes", params)
	if err != nil {
		return EpisodePage{}, err
	}

	page, err := decodeEpisodePage(body)
	if err != nil {
		log.Error(err)
		return EpisodePage{}, err
	}

	log.Infof("Got response from catalog, found %d episodes", len(page.Episodes))
	return page, nil
}

// Credits fetches one page of credits for the given title.
// An empty token requests the first page.
func Credits(id, token string) (CreditPage, error) {
	params := url.Values{}
	params.Set("pageSize", strconv.Itoa(CreditPageSize))
	if token != "" {
		params.Set("pageToken", token)
	}

	body, err := fetch("/titles/"+url.PathEscape(id)+"/credits", params)
	if err != nil {
		return CreditPage{}, err
	}

	page, err := decodeCreditPage(body)
	if err != nil {
		log.Error(err)
		return CreditPage{}, err
	}

	log.Infof("Got response from catalog, found %d credits", len(page.Credits))
	return page, nil
}

// Interests returns the catalog's interest taxonomy, sorted and de-duplicated.
// The taxonomy changes rarely, so responses are kept in the filesystem cache.
func Interests() ([]string, error) {
	cacheKey := cache.GenerateKey("interests", baseURL())

	var interests []string
	if cache.Read(cacheKey, &interests) {
		return interests, nil
	}

	body, err := fetch("/interests", nil)
	if err != nil {
		return nil, err
	}

	interests, err = decodeInterests(body)
	if err != nil {
		log.Error(err)
		return nil, err
	}

	log.Infof("Got response from catalog, found %d interests", len(interests))
	if err := cache.Write(cacheKey, interests); err != nil {
		log.Warn(err)
	}
	return interests, nil
}

// latestProbeSize is how many current-year titles are fetched when probing
// for recent releases; the list is trimmed to latestLimit after movies are
// moved to the front.
const (
	latestProbeSize = 20
	latestLimit     = 10
)

// Latest returns up to ten titles released in the current catalog year,
// with movies preferred over other kinds.
func Latest() ([]Title, error) {
	params := url.Values{}
	params.Set("startYear", strconv.Itoa(MaxYear))
	params.Set("pageSize", strconv.Itoa(latestProbeSize))

	body, err := fetch("/titles", params)
	if err != nil {
		return nil, err
	}

	page, err := decodeTitlePage(body)
	if err != nil {
		log.Error(err)
		return nil, err
	}

	movies := lo.Filter(page.Titles, func(t Title, _ int) bool { return t.Kind == KindMovie })
	rest := lo.Filter(page.Titles, func(t Title, _ int) bool { return t.Kind != KindMovie })

	latest := append(movies, rest...)
	if len(latest) > latestLimit {
		latest = latest[:latestLimit]
	}

	log.Infof("Got response from catalog, found %d latest titles", len(latest))
	return latest, nil
}
