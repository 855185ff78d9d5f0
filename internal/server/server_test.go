package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"github.com/lox/bjodds/internal/estimator"
	"github.com/lox/bjodds/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func TestServerHealth(t *testing.T) {
	t.Parallel()
	srv := NewServer(":0", testLogger())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestEstimateEndpoint(t *testing.T) {
	t.Parallel()
	srv := NewServer(":0", testLogger())

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantCode   string
		check      func(t *testing.T, resp EstimateResponse)
	}{
		{
			name:       "stand favored",
			query:      "player=10&player=7&dealer=6",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, resp EstimateResponse) {
				assert.Equal(t, estimator.Result{PlayerTotal: 17, DealerUpcard: 6, HitProbability: 25, StandProbability: 47}, resp.Result)
				assert.Equal(t, estimator.Stand, resp.Recommendation.Action)
				assert.Equal(t, "stand-favored", resp.Regime)
			},
		},
		{
			name:       "face cards and ace",
			query:      "player=A&player=K&dealer=A",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, resp EstimateResponse) {
				assert.Equal(t, 21, resp.Result.PlayerTotal)
				assert.Equal(t, 11, resp.Result.DealerUpcard)
				assert.Equal(t, 45, resp.Result.StandProbability)
			},
		},
		{
			name:       "hit favored",
			query:      "player=9&player=6&dealer=2",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, resp EstimateResponse) {
				assert.Equal(t, 35, resp.Result.HitProbability)
				assert.Equal(t, estimator.Hit, resp.Recommendation.Action)
				assert.Equal(t, "hit-favored", resp.Regime)
			},
		},
		{name: "one player card", query: "player=9&dealer=2", wantStatus: http.StatusBadRequest, wantCode: ErrCodeIncompleteHand},
		{name: "missing dealer", query: "player=9&player=6", wantStatus: http.StatusBadRequest, wantCode: ErrCodeIncompleteHand},
		{name: "bad card", query: "player=9&player=Z&dealer=2", wantStatus: http.StatusBadRequest, wantCode: ErrCodeInvalidCard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/estimate?"+tt.query, nil)
			w := httptest.NewRecorder()
			srv.Handler().ServeHTTP(w, req)

			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			if tt.wantCode != "" {
				var errData ErrorData
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errData))
				assert.Equal(t, tt.wantCode, errData.Code)
				assert.NotEmpty(t, errData.Message)
				return
			}

			var resp EstimateResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			tt.check(t, resp)
		})
	}
}

func TestStrategyEndpoint(t *testing.T) {
	t.Parallel()
	srv := NewServer(":0", testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/strategy", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp StrategyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Player Total", "Dealer 2-6", "Dealer 7-A"}, resp.Headers)
	require.Len(t, resp.Rows, 8)
	assert.Equal(t, "Hard 11", resp.Rows[3].Total)
	assert.EqualValues(t, "Double", resp.Rows[3].VsWeak)
}

func TestPages(t *testing.T) {
	t.Parallel()
	srv := NewServer(":0", testLogger())

	t.Run("home", func(t *testing.T) {
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "Welcome to the Blackjack Probability Analyzer")
		assert.Contains(t, body, `href="/calculator"`)
		assert.NotContains(t, body, "Back to Home")
	})

	t.Run("unknown path", func(t *testing.T) {
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("empty calculator", func(t *testing.T) {
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/calculator", nil))

		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "Enter Card Information")
		assert.Contains(t, body, "Back to Home")
		assert.Contains(t, body, `type="submit" disabled`)
		assert.Contains(t, body, "Basic Strategy Reference")
		assert.Contains(t, body, "Hard 13-16")
		assert.NotContains(t, body, "Results for Hand Total")
	})
}

func postForm(t *testing.T, srv *Server, values url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/calculator", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func TestCalculatorSubmit(t *testing.T) {
	t.Parallel()
	srv := NewServer(":0", testLogger())

	t.Run("complete hand", func(t *testing.T) {
		w := postForm(t, srv, url.Values{"player1": {"5"}, "player2": {"5"}, "dealer": {"K"}})

		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "Results for Hand Total: 10")
		assert.Contains(t, body, "55%")
		assert.Contains(t, body, "You should consider hitting (55% chance of winning).")
		assert.Contains(t, body, `<option value="K" selected>`)
		assert.NotContains(t, body, `type="submit" disabled`)
	})

	t.Run("incomplete hand keeps button disabled", func(t *testing.T) {
		w := postForm(t, srv, url.Values{"player1": {"10"}, "dealer": {"6"}})

		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.NotContains(t, body, "Results for Hand Total")
		assert.Contains(t, body, `type="submit" disabled`)
		assert.Contains(t, body, `<option value="10" selected>`)
	})

	t.Run("invalid card", func(t *testing.T) {
		w := postForm(t, srv, url.Values{"player1": {"10"}, "player2": {"X"}, "dealer": {"6"}})

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid card")
		assert.NotContains(t, w.Body.String(), "Results for Hand Total")
	})
}

// wsClient wraps a test websocket connection
type wsClient struct {
	t    *testing.T
	conn *websocket.Conn
}

func dialWS(t *testing.T, ts *httptest.Server) *wsClient {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return &wsClient{t: t, conn: conn}
}

func (c *wsClient) send(msgType MessageType, data interface{}, requestID string) {
	c.t.Helper()
	msg, err := NewMessage(msgType, data)
	require.NoError(c.t, err)
	msg.RequestID = requestID
	require.NoError(c.t, c.conn.WriteJSON(msg))
}

func (c *wsClient) read() Message {
	c.t.Helper()
	require.NoError(c.t, c.conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg Message
	require.NoError(c.t, c.conn.ReadJSON(&msg))
	return msg
}

func (c *wsClient) readState() session.Snapshot {
	c.t.Helper()
	msg := c.read()
	require.Equal(c.t, MessageTypeState, msg.Type, string(msg.Data))
	var snap session.Snapshot
	require.NoError(c.t, json.Unmarshal(msg.Data, &snap))
	return snap
}

func (c *wsClient) readError() ErrorData {
	c.t.Helper()
	msg := c.read()
	require.Equal(c.t, MessageTypeError, msg.Type, string(msg.Data))
	var data ErrorData
	require.NoError(c.t, json.Unmarshal(msg.Data, &data))
	return data
}

func TestWebSocketLiveForm(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clock := quartz.NewMock(t)
	srv := NewServer(":0", testLogger(), WithClock(clock))
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	client := dialWS(t, ts)

	initial := client.readState()
	assert.Equal(t, "home", initial.View)
	assert.False(t, initial.CanCompute)
	assert.Nil(t, initial.Result)

	client.send(MessageTypeView, ViewData{View: "calculator"}, "v1")
	assert.Equal(t, "calculator", client.readState().View)

	client.send(MessageTypeCompute, nil, "c0")
	errData := client.readError()
	assert.Equal(t, ErrCodeIncompleteHand, errData.Code)

	client.send(MessageTypeSelect, SelectData{Slot: "player1", Card: "10"}, "s1")
	client.readState()
	client.send(MessageTypeSelect, SelectData{Slot: "player2", Card: "9"}, "s2")
	assert.False(t, client.readState().CanCompute)
	client.send(MessageTypeSelect, SelectData{Slot: "dealer", Card: "10"}, "s3")
	snap := client.readState()
	assert.True(t, snap.CanCompute)
	assert.Equal(t, [2]string{"10", "9"}, snap.Player)
	assert.Equal(t, "10", snap.Dealer)

	client.send(MessageTypeCompute, nil, "c1")
	msg := client.read()
	assert.Equal(t, "c1", msg.RequestID)
	require.NoError(t, json.Unmarshal(msg.Data, &snap))
	require.NotNil(t, snap.Result)
	assert.Equal(t, 19, snap.Result.PlayerTotal)
	assert.Equal(t, 39, snap.Result.StandProbability)
	assert.Equal(t, 25, snap.Result.HitProbability)
	require.NotNil(t, snap.Recommendation)
	assert.Equal(t, estimator.Stand, snap.Recommendation.Action)
	assert.True(t, snap.Pulsing)

	// The pulse clears on its own and the server pushes the new state.
	clock.Advance(session.DefaultPulse).MustWait(ctx)
	msg = client.read()
	assert.Empty(t, msg.RequestID)
	require.NoError(t, json.Unmarshal(msg.Data, &snap))
	assert.False(t, snap.Pulsing)
	require.NotNil(t, snap.Result, "result outlives the pulse")

	client.send(MessageTypeReset, nil, "r1")
	snap = client.readState()
	assert.Nil(t, snap.Result)
	assert.False(t, snap.CanCompute)
}

func TestWebSocketErrors(t *testing.T) {
	srv := NewServer(":0", testLogger(), WithClock(quartz.NewMock(t)))
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	client := dialWS(t, ts)
	client.readState()

	client.send(MessageTypeSelect, SelectData{Slot: "player3", Card: "10"}, "e1")
	errData := client.readError()
	assert.Equal(t, ErrCodeInvalidSlot, errData.Code)

	client.send(MessageTypeSelect, SelectData{Slot: "dealer", Card: "Z"}, "e2")
	assert.Equal(t, ErrCodeInvalidCard, client.readError().Code)

	client.send(MessageTypeView, ViewData{View: "settings"}, "e3")
	assert.Equal(t, ErrCodeInvalidView, client.readError().Code)

	client.send(MessageType("shuffle"), nil, "e4")
	msg := client.read()
	assert.Equal(t, MessageTypeError, msg.Type)
	assert.Equal(t, "e4", msg.RequestID)

	// Clearing a selector with an empty card is allowed
	client.send(MessageTypeSelect, SelectData{Slot: "dealer", Card: ""}, "ok")
	assert.Equal(t, "", client.readState().Dealer)
}

func TestConnectionsAreIsolated(t *testing.T) {
	srv := NewServer(":0", testLogger(), WithClock(quartz.NewMock(t)))
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	a := dialWS(t, ts)
	b := dialWS(t, ts)
	a.readState()
	b.readState()

	a.send(MessageTypeSelect, SelectData{Slot: "player1", Card: "A"}, "")
	assert.Equal(t, "A", a.readState().Player[0])

	b.send(MessageTypeSelect, SelectData{Slot: "player2", Card: "3"}, "")
	snap := b.readState()
	assert.Equal(t, "", snap.Player[0])
	assert.Equal(t, "3", snap.Player[1])

	assert.Eventually(t, func() bool { return srv.ConnectionCount() == 2 }, time.Second, 10*time.Millisecond)

	require.NoError(t, srv.Shutdown(context.Background()))
	assert.Equal(t, 0, srv.ConnectionCount())
}
