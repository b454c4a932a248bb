package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/bachlog/internal/domain"
)

// CourseSummary is the subset of a catalog course the planner stores.
type CourseSummary struct {
	UUID    string  `json:"uuid" yaml:"uuid"`
	Code    string  `json:"code" yaml:"code"`
	Title   string  `json:"title" yaml:"title"`
	Credits float64 `json:"credits" yaml:"credits"`
}

// Season holds the offering flags of a course. Both false means unknown.
type Season struct {
	IsAutumnCourse bool `json:"isAutumnCourse" yaml:"is_autumn_course"`
	IsSpringCourse bool `json:"isSpringCourse" yaml:"is_spring_course"`
}

// Curricula lists the curricula a course belongs to and the one picked as
// default by the configured CurriculumChooser.
type Curricula struct {
	Titles  []string `json:"titles" yaml:"titles"`
	Default string   `json:"default" yaml:"default"`
}

// Client is the remote course catalog consumed by the importer and the
// compliance checker.
type Client interface {
	// SearchByCode returns confirmed courses whose code matches, best match
	// first.
	SearchByCode(ctx context.Context, code string) ([]CourseSummary, error)

	// GetByIdentity returns the latest version of the course with the given
	// catalog identity.
	GetByIdentity(ctx context.Context, identity string) (*CourseSummary, error)

	GetSeason(ctx context.Context, code string) (Season, error)

	GetCurricula(ctx context.Context, identity string) (Curricula, error)

	// GetPrerequisites returns the flattened list of acceptable prerequisite
	// codes. Only confirmed prerequisites are included.
	GetPrerequisites(ctx context.Context, code string) ([]string, error)

	// GetRequirementTree returns the top-level block list of a curriculum
	// version. A version without blocks yields nil.
	GetRequirementTree(ctx context.Context, curriculumID string, year int) ([]*domain.CurriculumNode, error)

	// GetCurriculumVersions returns the years of confirmed versions, most
	// recent first.
	GetCurriculumVersions(ctx context.Context, curriculumID string) ([]int, error)
}

const stateConfirmed = "confirmed"

// httpClient implements Client against the catalog's JSON API.
type httpClient struct {
	cfg      Config
	http     *http.Client
	chooser  CurriculumChooser
	observer Observer
}

// NewHTTPClient creates a Client talking to cfg.BaseURL. A nil chooser
// falls back to picking the first curriculum title. The configured timeout
// also bounds dialing; with a zero timeout no call is ever cut short.
func NewHTTPClient(cfg Config, chooser CurriculumChooser, observer Observer) Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	if chooser == nil {
		chooser = PreferredChooser{}
	}
	return &httpClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: cfg.Timeout(),
				}).DialContext,
			},
		},
		chooser:  chooser,
		observer: observer,
	}
}

// localized decodes either a plain string or an {"et": ..., "en": ...}
// object, preferring Estonian.
type localized string

func (l *localized) UnmarshalJSON(data []byte) error {
	var s string
	if json.Unmarshal(data, &s) == nil {
		*l = localized(s)
		return nil
	}
	var loc map[string]string
	if json.Unmarshal(data, &loc) == nil {
		if v := loc["et"]; v != "" {
			*l = localized(v)
		} else {
			*l = localized(loc["en"])
		}
	}
	return nil
}

// flexNumber decodes a JSON number or a numeric string.
type flexNumber float64

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	var f float64
	if json.Unmarshal(data, &f) == nil {
		*n = flexNumber(f)
		return nil
	}
	var s string
	if json.Unmarshal(data, &s) == nil {
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			*n = flexNumber(v)
		}
	}
	return nil
}

type codeRef struct {
	Code string `json:"code"`
}

type courseDTO struct {
	UUID    string     `json:"uuid"`
	Code    string     `json:"code"`
	Title   localized  `json:"title"`
	Credits flexNumber `json:"credits"`
}

func (d courseDTO) summary() CourseSummary {
	return CourseSummary{
		UUID:    d.UUID,
		Code:    d.Code,
		Title:   string(d.Title),
		Credits: float64(d.Credits),
	}
}

type prerequisiteDTO struct {
	Code         string    `json:"code"`
	State        codeRef   `json:"state"`
	Alternatives []codeRef `json:"alternatives"`
}

type courseVersionDTO struct {
	courseDTO
	AdditionalInfo struct {
		StudySemesters []codeRef          `json:"study_semesters"`
		Prerequisites  []prerequisiteDTO `json:"prerequisites"`
	} `json:"additional_info"`
}

type curriculumDTO struct {
	Title localized `json:"title"`
}

type curriculumVersionDTO struct {
	Year  flexNumber `json:"year"`
	State codeRef    `json:"state"`
}

type requirementTreeDTO struct {
	Blocks []*domain.CurriculumNode `json:"blocks"`
}

func (c *httpClient) SearchByCode(ctx context.Context, code string) ([]CourseSummary, error) {
	code = domain.NormalizeCode(code)
	q := url.Values{}
	q.Set("code", code)
	q.Set("take", strconv.Itoa(c.cfg.SearchLimit))
	q.Set("states", stateConfirmed)

	var items []courseDTO
	if err := c.getJSON(ctx, "search_by_code", code, "/courses", q, &items); err != nil {
		return nil, err
	}
	out := make([]CourseSummary, 0, len(items))
	for _, it := range items {
		out = append(out, it.summary())
	}
	return out, nil
}

func (c *httpClient) GetByIdentity(ctx context.Context, identity string) (*CourseSummary, error) {
	var v courseVersionDTO
	path := "/courses/" + url.PathEscape(identity) + "/versions/latest"
	if err := c.getJSON(ctx, "get_by_identity", identity, path, nil, &v); err != nil {
		return nil, err
	}
	s := v.summary()
	if s.UUID == "" {
		s.UUID = identity
	}
	return &s, nil
}

func (c *httpClient) GetSeason(ctx context.Context, code string) (Season, error) {
	v, err := c.latestVersion(ctx, "get_season", code)
	if err != nil {
		return Season{}, err
	}
	var s Season
	for _, sem := range v.AdditionalInfo.StudySemesters {
		switch strings.ToLower(sem.Code) {
		case "autumn", "fall":
			s.IsAutumnCourse = true
		case "spring":
			s.IsSpringCourse = true
		}
	}
	return s, nil
}

func (c *httpClient) GetCurricula(ctx context.Context, identity string) (Curricula, error) {
	var items []curriculumDTO
	path := "/courses/" + url.PathEscape(identity) + "/curricula"
	if err := c.getJSON(ctx, "get_curricula", identity, path, nil, &items); err != nil {
		return Curricula{}, err
	}
	titles := make([]string, 0, len(items))
	for _, it := range items {
		if t := strings.TrimSpace(string(it.Title)); t != "" {
			titles = append(titles, t)
		}
	}
	return Curricula{Titles: titles, Default: c.chooser.ChooseDefault(titles)}, nil
}

func (c *httpClient) GetPrerequisites(ctx context.Context, code string) ([]string, error) {
	v, err := c.latestVersion(ctx, "get_prerequisites", code)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var codes []string
	add := func(code string) {
		code = domain.NormalizeCode(code)
		if code == "" || seen[code] {
			return
		}
		seen[code] = true
		codes = append(codes, code)
	}
	for _, p := range v.AdditionalInfo.Prerequisites {
		if !strings.EqualFold(p.State.Code, stateConfirmed) {
			continue
		}
		add(p.Code)
		for _, alt := range p.Alternatives {
			add(alt.Code)
		}
	}
	return codes, nil
}

func (c *httpClient) GetRequirementTree(ctx context.Context, curriculumID string, year int) ([]*domain.CurriculumNode, error) {
	var tree requirementTreeDTO
	path := fmt.Sprintf("/curricula/%s/versions/%d", url.PathEscape(curriculumID), year)
	target := fmt.Sprintf("%s@%d", curriculumID, year)
	if err := c.getJSON(ctx, "get_requirement_tree", target, path, nil, &tree); err != nil {
		return nil, err
	}
	if len(tree.Blocks) == 0 {
		return nil, nil
	}
	return tree.Blocks, nil
}

func (c *httpClient) GetCurriculumVersions(ctx context.Context, curriculumID string) ([]int, error) {
	var items []curriculumVersionDTO
	path := "/curricula/" + url.PathEscape(curriculumID) + "/versions"
	if err := c.getJSON(ctx, "get_curriculum_versions", curriculumID, path, nil, &items); err != nil {
		return nil, err
	}
	var years []int
	for _, it := range items {
		if !strings.EqualFold(it.State.Code, stateConfirmed) || it.Year <= 0 {
			continue
		}
		years = append(years, int(it.Year))
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years, nil
}

func (c *httpClient) latestVersion(ctx context.Context, op, code string) (*courseVersionDTO, error) {
	code = domain.NormalizeCode(code)
	var v courseVersionDTO
	path := "/courses/" + url.PathEscape(code) + "/versions/latest"
	if err := c.getJSON(ctx, op, code, path, nil, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// getJSON performs one GET and decodes the body into out. Every call is
// reported to the observer exactly once. There are no retries.
func (c *httpClient) getJSON(ctx context.Context, op, target, path string, query url.Values, out any) error {
	start := time.Now()
	err := c.doGet(ctx, path, query, out)
	event := CallEvent{
		Operation: op,
		Target:    target,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
		ErrorCode: errorCode(err),
	}
	c.observer.OnCallComplete(event)
	return err
}

func (c *httpClient) doGet(ctx context.Context, path string, query url.Values, out any) error {
	if timeout := c.cfg.Timeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	u := strings.TrimRight(c.cfg.BaseURL, "/") + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%w: GET %s", ErrTimeout, path)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: GET %s", ErrNotFound, path)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("%w: GET %s returned %d", ErrUnexpectedStatus, path, resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: GET %s: %v", ErrInvalidResponse, path, err)
	}
	return nil
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrUnexpectedStatus):
		return "STATUS"
	case errors.Is(err, ErrInvalidResponse):
		return "INVALID_RESPONSE"
	default:
		return "UNKNOWN"
	}
}
