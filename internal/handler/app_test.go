package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/7vignesh/blind-coding/internal/config"
	"github.com/7vignesh/blind-coding/internal/handler"
	"github.com/7vignesh/blind-coding/internal/model"
	"github.com/7vignesh/blind-coding/internal/repository"
	"github.com/7vignesh/blind-coding/internal/response"
	"github.com/7vignesh/blind-coding/internal/router"
	"github.com/7vignesh/blind-coding/internal/service"
	"github.com/7vignesh/blind-coding/internal/validator"
	ws "github.com/7vignesh/blind-coding/internal/websocket"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	validator.Setup()
	os.Exit(m.Run())
}

// balancedCorpus has exactly one possible question set.
func balancedCorpus() []model.Question {
	return []model.Question{
		{Title: "Two Sum", Difficulty: model.DifficultyEasy, Topic: "Arrays", Description: "Find two numbers adding to target."},
		{Title: "Valid Parentheses", Difficulty: model.DifficultyEasy, Topic: "Stacks", Description: "Check bracket balance."},
		{Title: "LRU Cache", Difficulty: model.DifficultyMedium, Topic: "Design", Description: "Build an LRU cache."},
		{Title: "Median of Two Sorted Arrays", Difficulty: model.DifficultyHard, Topic: "Binary Search", Description: "Find the median."},
		{Title: "Word Ladder II", Difficulty: model.DifficultyHard, Topic: "Graphs", Description: "All shortest transformations."},
	}
}

// testApp is the full HTTP surface backed by a temporary submissions dir.
type testApp struct {
	server   *httptest.Server
	client   *http.Client
	practice *service.PracticeService
	tracker  *service.SubmissionTracker
	hub      *ws.Hub
	dir      string
	cancel   context.CancelFunc
}

type envelope struct {
	Data  json.RawMessage     `json:"data"`
	Error *response.ErrorBody `json:"error"`
}

func newTestApp(questions []model.Question, dir string) (*testApp, error) {
	store, err := repository.NewQuestionStore(questions)
	if err != nil {
		return nil, err
	}

	log := zerolog.Nop()
	cfg := &config.Config{GinMode: gin.TestMode, SubmitRatePerMinute: 1000}

	hub := ws.NewHub(log)
	tracker := service.NewSubmissionTracker()
	writer := service.NewSubmissionWriter(dir, log)
	practice := service.NewPracticeService(store, tracker, writer, hub, "tester", nil, log)

	ctx, cancel := context.WithCancel(context.Background())
	r := router.SetupRouter(ctx, &router.Handlers{
		Practice: handler.NewPracticeHandler(practice, log),
		WS:       handler.NewWSHandler(practice, hub, log, nil),
		System:   handler.NewSystemHandler(store, tracker, hub, nil),
	}, cfg, log)

	return &testApp{
		server: httptest.NewServer(r),
		client: &http.Client{
			Timeout: 5 * time.Second,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		practice: practice,
		tracker:  tracker,
		hub:      hub,
		dir:      dir,
		cancel:   cancel,
	}, nil
}

func startTestApp(t *testing.T, questions []model.Question) *testApp {
	t.Helper()
	app, err := newTestApp(questions, t.TempDir())
	if err != nil {
		t.Fatalf("newTestApp: %v", err)
	}
	t.Cleanup(app.close)
	return app
}

func (a *testApp) close() {
	a.server.Close()
	a.cancel()
}

func (a *testApp) get(path string) (*http.Response, string, error) {
	resp, err := a.client.Get(a.server.URL + path)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	return resp, string(body), err
}

func (a *testApp) postJSON(path, body string) (*http.Response, envelope, error) {
	var env envelope
	resp, err := a.client.Post(a.server.URL+path, "application/json", strings.NewReader(body))
	if err != nil {
		return nil, env, err
	}
	defer resp.Body.Close()
	err = json.NewDecoder(resp.Body).Decode(&env)
	return resp, env, err
}

// start opens the answer view of a card and returns its path.
func (a *testApp) start(index int) (string, error) {
	resp, _, err := a.get(a.startPath(index))
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusSeeOther {
		return "", fmt.Errorf("start %d: status %d", index, resp.StatusCode)
	}
	return resp.Header.Get("Location"), nil
}

// startPath is the overview card's Start link for index in the current set.
func (a *testApp) startPath(index int) string {
	title := ""
	if set, _ := a.practice.CurrentQuestionSet(); index >= 0 && index < len(set) {
		title = set[index].Title
	}
	return fmt.Sprintf("/questions/%d/start?title=%s", index, url.QueryEscape(title))
}

// indexOf finds a title in the current set.
func (a *testApp) indexOf(title string) (int, error) {
	set, _ := a.practice.CurrentQuestionSet()
	for i, q := range set {
		if q.Title == title {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%q is not in the current set", title)
}

func (a *testApp) dialWS(path string) (*websocket.Conn, error) {
	wsURL := "ws" + strings.TrimPrefix(a.server.URL, "http") + path
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	return conn, err
}

func (a *testApp) submissionFiles() ([]string, error) {
	entries, err := os.ReadDir(a.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

// readEvent reads one event frame with a deadline.
func readEvent(conn *websocket.Conn, v interface{}) error {
	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	return conn.ReadJSON(v)
}
