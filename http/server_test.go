package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/vipbot"
	"github.com/fwojciec/vipbot/bot"
	vipbothttp "github.com/fwojciec/vipbot/http"
	"github.com/fwojciec/vipbot/inmem"
	"github.com/fwojciec/vipbot/mock"
	vipbotprom "github.com/fwojciec/vipbot/prometheus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const serverDataset = `[PRODUCTS]
VIP Gold|Gold Pack|100.000|30 hari|5
VIP Silver|Silver Pack|50.000|30 hari|Habis
[FAQ]
Cara beli?|Hubungi admin`

func newTestServer(t *testing.T, content string) *httptest.Server {
	t.Helper()

	cache := inmem.NewCache()
	if content != "" {
		snap, _ := vipbot.ParseCatalog(content)
		require.True(t, cache.Replace(snap))
	}
	s := vipbothttp.NewServer(&bot.Assistant{
		Catalog: cache,
		Asker: &mock.Asker{
			AskFn: func(_ context.Context, question string, _ []*vipbot.Product) (string, error) {
				return "jawaban: " + question, nil
			},
		},
	}, nil)

	server := httptest.NewServer(s.Handler())
	t.Cleanup(server.Close)
	return server
}

func getReply(t *testing.T, url string) (int, vipbot.Reply) {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	var reply vipbot.Reply
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&reply))
	}
	return resp.StatusCode, reply
}

func TestServer_Ask(t *testing.T) {
	t.Parallel()

	t.Run("answers a question", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(t, serverDataset)

		body := `{"user":{"id":"u1","name":"alice"},"question":"gold"}`
		resp, err := http.Post(server.URL+"/ask", "application/json", strings.NewReader(body))
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
		var reply vipbot.Reply
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&reply))
		assert.Equal(t, "jawaban: gold", reply.Description)
		assert.Equal(t, "Ditanyakan oleh alice", reply.Footer)
	})

	t.Run("rejects malformed body with request id", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(t, serverDataset)

		resp, err := http.Post(server.URL+"/ask", "application/json", strings.NewReader("{"))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body vipbothttp.ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "invalid request body", body.Error)
		assert.NotEmpty(t, body.RequestID)
	})

	t.Run("rejects missing user and empty question", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(t, serverDataset)

		for _, body := range []string{
			`{"question":"gold"}`,
			`{"user":{"id":"u1"},"question":"  "}`,
		} {
			resp, err := http.Post(server.URL+"/ask", "application/json", strings.NewReader(body))
			require.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
		}
	})
}

func TestServer_Commands(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, serverDataset)

	t.Run("faq lists options", func(t *testing.T) {
		t.Parallel()

		status, reply := getReply(t, server.URL+"/faq")
		require.Equal(t, http.StatusOK, status)
		require.Len(t, reply.Options, 1)
		assert.Equal(t, "1", reply.Options[0].Value)
	})

	t.Run("faq answer by index", func(t *testing.T) {
		t.Parallel()

		status, reply := getReply(t, server.URL+"/faq/1")
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "Hubungi admin", reply.Description)
	})

	t.Run("faq answer out of range is not found", func(t *testing.T) {
		t.Parallel()

		status, _ := getReply(t, server.URL+"/faq/9")
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("faq answer with non-numeric index is bad request", func(t *testing.T) {
		t.Parallel()

		status, _ := getReply(t, server.URL+"/faq/abc")
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("stock by category", func(t *testing.T) {
		t.Parallel()

		status, reply := getReply(t, server.URL+"/stock/vip%20gold")
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "📦 Produk: VIP Gold", reply.Title)
	})

	t.Run("stock lists categories", func(t *testing.T) {
		t.Parallel()

		status, reply := getReply(t, server.URL+"/stock")
		require.Equal(t, http.StatusOK, status)
		assert.Len(t, reply.Fields, 2)
	})

	t.Run("help topic", func(t *testing.T) {
		t.Parallel()

		status, reply := getReply(t, server.URL+"/help/ask")
		require.Equal(t, http.StatusOK, status)
		assert.Contains(t, reply.Description, "!ask")
	})

	t.Run("unknown help topic is not found", func(t *testing.T) {
		t.Parallel()

		status, _ := getReply(t, server.URL+"/help/weather")
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("ping and status", func(t *testing.T) {
		t.Parallel()

		status, reply := getReply(t, server.URL+"/ping")
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "🏓 Pong!", reply.Title)

		status, reply = getReply(t, server.URL+"/status")
		require.Equal(t, http.StatusOK, status)
		assert.NotEmpty(t, reply.Fields)
	})
}

func TestServer_Probes(t *testing.T) {
	t.Parallel()

	t.Run("readyz fails until catalog is loaded", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(t, "")

		resp, err := http.Get(server.URL + "/readyz")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		resp, err = http.Get(server.URL + "/healthz")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("readyz succeeds with catalog", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(t, serverDataset)

		resp, err := http.Get(server.URL + "/readyz")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestServer_Middleware(t *testing.T) {
	t.Parallel()

	var patterns []string
	s := vipbothttp.NewServer(&bot.Assistant{Catalog: inmem.NewCache()}, nil)
	s.Metrics = func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)
			patterns = append(patterns, vipbothttp.RoutePattern(r))
		})
	}
	s.MetricsHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("metrics"))
	})

	h := s.Handler()
	for _, path := range []string{"/help/faq", "/metrics"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	assert.Equal(t, []string{"/help/{topic}", "/metrics"}, patterns)
}

func TestServer_MetricsLabelUnmatchedPaths(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := vipbotprom.NewHTTPMetrics(reg)
	s := vipbothttp.NewServer(&bot.Assistant{Catalog: inmem.NewCache()}, nil)
	s.Metrics = m.Middleware(vipbothttp.RoutePattern)

	h := s.Handler()
	for i := 0; i < 50; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/scan/%d", i), nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	}

	assert.Equal(t, 1, testutil.CollectAndCount(m.Requests))
	assert.InDelta(t, 50, testutil.ToFloat64(m.Requests.WithLabelValues("GET", vipbothttp.UnmatchedRoute, "404")), 0)
}

func TestServer_Serve(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := vipbothttp.NewServer(&bot.Assistant{Catalog: inmem.NewCache()}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestErrorStatusCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, http.StatusBadRequest, vipbothttp.ErrorStatusCode(vipbot.EINVALID))
	assert.Equal(t, http.StatusNotFound, vipbothttp.ErrorStatusCode(vipbot.ENOTFOUND))
	assert.Equal(t, http.StatusServiceUnavailable, vipbothttp.ErrorStatusCode(vipbot.EUNAVAILABLE))
	assert.Equal(t, http.StatusTooManyRequests, vipbothttp.ErrorStatusCode(vipbot.ERATELIMIT))
	assert.Equal(t, http.StatusInternalServerError, vipbothttp.ErrorStatusCode("bogus"))
}
