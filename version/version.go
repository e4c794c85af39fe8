// Package version tracks the application version and discovers newer releases.
package version

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/hydra-cli/hydra/filesystem"
	"github.com/hydra-cli/hydra/network"
	"github.com/hydra-cli/hydra/util"
	"github.com/hydra-cli/hydra/where"
	"github.com/metafates/gache"
)

const releasesURL = "https://api.github.com/repos/hydra-cli/hydra/releases/latest"

var versionCacher = gache.New[string](&gache.Options{
	Path:       filepath.Join(where.Cache(), "version.json"),
	Lifetime:   time.Hour * 24 * 2,
	FileSystem: &filesystem.GacheFs{},
})

// Latest returns the newest published release version, without the "v"
// prefix. The GitHub answer is cached for two days to stay clear of the
// unauthenticated rate limit.
func Latest() (string, error) {
	cached, expired, err := versionCacher.Get()
	if err == nil && !expired && cached != "" {
		return cached, nil
	}

	req, err := http.NewRequest(http.MethodGet, releasesURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := network.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("releases api returned %s", resp.Status)
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err = json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", err
	}

	version := strings.TrimPrefix(release.TagName, "v")
	if version == "" {
		return "", fmt.Errorf("release has no tag name")
	}

	_ = versionCacher.Set(version)
	return version, nil
}
