package github

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"github.com/ccusage-menubar/releasekit/pkg/types"
	gh "github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// Client wraps the GitHub API client for release operations
type Client struct {
	gh    *gh.Client
	Owner string
	Repo  string
}

// NewClient creates a new GitHub API client
func NewClient(token, owner, repo string) *Client {
	var client *gh.Client

	if token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		tc := oauth2.NewClient(context.Background(), ts)
		client = gh.NewClient(tc)
	} else {
		client = gh.NewClient(nil)
	}

	return &Client{
		gh:    client,
		Owner: owner,
		Repo:  repo,
	}
}

// CreateDraftRelease creates a draft (never published, never prerelease)
// release and returns its descriptor. The tag is not created until the
// draft is published, but a conflicting existing tag still fails here.
func (c *Client) CreateDraftRelease(ctx context.Context, tag, name, body string) (*types.Release, error) {
	release := &gh.RepositoryRelease{
		TagName:    gh.String(tag),
		Name:       gh.String(name),
		Body:       gh.String(body),
		Draft:      gh.Bool(true),
		Prerelease: gh.Bool(false),
	}

	created, _, err := c.gh.Repositories.CreateRelease(ctx, c.Owner, c.Repo, release)
	if err != nil {
		return nil, fmt.Errorf("failed to create draft release %s: %w", tag, err)
	}

	return parseRelease(created), nil
}

// GetRelease fetches a release by its identifier
func (c *Client) GetRelease(ctx context.Context, id int64) (*types.Release, error) {
	release, _, err := c.gh.Repositories.GetRelease(ctx, c.Owner, c.Repo, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get release %d: %w", id, err)
	}

	return parseRelease(release), nil
}

// GetLatestRelease fetches the latest published release. Returns nil when
// the repository has no published releases yet.
func (c *Client) GetLatestRelease(ctx context.Context) (*types.Release, error) {
	release, resp, err := c.gh.Repositories.GetLatestRelease(ctx, c.Owner, c.Repo)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest release: %w", err)
	}

	return parseRelease(release), nil
}

// TagExists reports whether a release (draft or published) already uses tag
func (c *Client) TagExists(ctx context.Context, tag string) (bool, error) {
	// Drafts have no tag on the git side yet, so GetReleaseByTag misses
	// them; scan the release list instead.
	releases, err := c.ListReleases(ctx, 100)
	if err != nil {
		return false, err
	}

	for _, r := range releases {
		if r.TagName == tag {
			return true, nil
		}
	}
	return false, nil
}

// ListReleases fetches up to limit releases, drafts included, newest first
func (c *Client) ListReleases(ctx context.Context, limit int) ([]types.Release, error) {
	var all []types.Release

	opts := &gh.ListOptions{PerPage: 100}
	if limit < 100 {
		opts.PerPage = limit
	}

	for page := 1; page <= 10; page++ { // Safety limit of 10 pages
		opts.Page = page

		releases, resp, err := c.gh.Repositories.ListReleases(ctx, c.Owner, c.Repo, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list releases (page %d): %w", page, err)
		}

		for _, ghRelease := range releases {
			all = append(all, *parseRelease(ghRelease))
			if len(all) >= limit {
				return all, nil
			}
		}

		if resp.NextPage == 0 {
			break
		}
	}

	return all, nil
}

// UploadAsset attaches a file to an existing release
func (c *Client) UploadAsset(ctx context.Context, releaseID int64, path string) (*types.Asset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open asset %s: %w", path, err)
	}
	defer file.Close()

	opts := &gh.UploadOptions{Name: filepath.Base(path)}

	asset, _, err := c.gh.Repositories.UploadReleaseAsset(ctx, c.Owner, c.Repo, releaseID, opts, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload asset %s to release %d: %w", opts.Name, releaseID, err)
	}

	return &types.Asset{
		ID:   asset.GetID(),
		Name: asset.GetName(),
		Size: int64(asset.GetSize()),
		URL:  asset.GetBrowserDownloadURL(),
	}, nil
}

// parseRelease converts a GitHub release to our Release type
func parseRelease(ghRelease *gh.RepositoryRelease) *types.Release {
	release := &types.Release{
		ID:         ghRelease.GetID(),
		TagName:    ghRelease.GetTagName(),
		Name:       ghRelease.GetName(),
		Draft:      ghRelease.GetDraft(),
		Prerelease: ghRelease.GetPrerelease(),
		CreatedAt:  ghRelease.GetCreatedAt().Time,
		AssetCount: len(ghRelease.Assets),
		URL:        ghRelease.GetHTMLURL(),
	}

	// Tag may not parse (drafts created by hand, odd tags); keep going
	if ver, err := semver.NewVersion(ghRelease.GetTagName()); err == nil {
		release.Version = ver
	}

	return release
}

// MockClient is a mock implementation for testing
type MockClient struct {
	Releases    []types.Release
	NextID      int64
	CreateErr   error
	GetErr      error
	ListErr     error
	UploadErr   error
	Uploaded    map[int64][]string
	CreatedBody string
}

// CreateDraftRelease records the created draft and assigns the next ID
func (m *MockClient) CreateDraftRelease(ctx context.Context, tag, name, body string) (*types.Release, error) {
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}

	m.NextID++
	release := types.Release{
		ID:      m.NextID,
		TagName: tag,
		Name:    name,
		Draft:   true,
	}
	if ver, err := semver.NewVersion(tag); err == nil {
		release.Version = ver
	}

	m.Releases = append(m.Releases, release)
	m.CreatedBody = body
	return &release, nil
}

// GetRelease returns the mocked release with the given ID
func (m *MockClient) GetRelease(ctx context.Context, id int64) (*types.Release, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	for i := range m.Releases {
		if m.Releases[i].ID == id {
			return &m.Releases[i], nil
		}
	}
	return nil, fmt.Errorf("failed to get release %d: not found", id)
}

// GetLatestRelease returns the first published mocked release
func (m *MockClient) GetLatestRelease(ctx context.Context) (*types.Release, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	for i := range m.Releases {
		if !m.Releases[i].Draft && !m.Releases[i].Prerelease {
			return &m.Releases[i], nil
		}
	}
	return nil, nil
}

// TagExists reports whether a mocked release uses the tag
func (m *MockClient) TagExists(ctx context.Context, tag string) (bool, error) {
	if m.ListErr != nil {
		return false, m.ListErr
	}
	for _, r := range m.Releases {
		if r.TagName == tag {
			return true, nil
		}
	}
	return false, nil
}

// ListReleases returns the first limit mocked releases
func (m *MockClient) ListReleases(ctx context.Context, limit int) ([]types.Release, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	if len(m.Releases) <= limit {
		return m.Releases, nil
	}
	return m.Releases[:limit], nil
}

// UploadAsset records the uploaded path against the release ID
func (m *MockClient) UploadAsset(ctx context.Context, releaseID int64, path string) (*types.Asset, error) {
	if m.UploadErr != nil {
		return nil, m.UploadErr
	}
	if m.Uploaded == nil {
		m.Uploaded = make(map[int64][]string)
	}
	m.Uploaded[releaseID] = append(m.Uploaded[releaseID], path)
	return &types.Asset{Name: filepath.Base(path)}, nil
}
