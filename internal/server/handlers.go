package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lox/bjodds/internal/card"
	"github.com/lox/bjodds/internal/estimator"
	"github.com/lox/bjodds/internal/session"
	"github.com/lox/bjodds/internal/strategy"
)

// formFields are the selector names used by the HTML form, in slot order
var formFields = map[session.Slot]string{
	session.PlayerFirst:  "player1",
	session.PlayerSecond: "player2",
	session.Dealer:       "dealer",
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "home", pageData{})
}

func (s *Server) handleCalculator(w http.ResponseWriter, r *http.Request) {
	st := session.New(session.WithPulse(0))
	st.SetView(session.Calculator)
	s.render(w, http.StatusOK, "calculator", newPageData(st.Snapshot(), ""))
}

// handleCalculatorSubmit computes from a posted form. Each request starts
// from a fresh session; nothing is kept between posts.
func (s *Server) handleCalculatorSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	st := session.New(session.WithPulse(0), session.WithLogger(s.logger))
	st.SetView(session.Calculator)

	status := http.StatusOK
	var formErr string
	for _, slot := range session.Slots {
		sym, err := card.Parse(r.PostForm.Get(formFields[slot]))
		if err != nil {
			if errors.Is(err, card.ErrNoCard) {
				continue
			}
			status = http.StatusBadRequest
			formErr = err.Error()
			continue
		}
		_ = st.Select(slot, sym) // Parse already validated the symbol
	}

	if formErr == "" && st.CanCompute() {
		if _, err := st.Compute(); err != nil {
			status = http.StatusBadRequest
			formErr = err.Error()
		}
	}

	s.render(w, status, "calculator", newPageData(st.Snapshot(), formErr))
}

// handleEstimate answers GET /api/estimate?player=10&player=7&dealer=6
func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	players := q["player"]
	if len(players) != 2 {
		writeError(w, http.StatusBadRequest, ErrCodeIncompleteHand, "exactly two player cards are required")
		return
	}

	hand, err := estimator.NewHand(players[0], players[1], q.Get("dealer"))
	if err != nil {
		code := ErrCodeInvalidCard
		if errors.Is(err, card.ErrNoCard) {
			code = ErrCodeIncompleteHand
		}
		writeError(w, http.StatusBadRequest, code, err.Error())
		return
	}

	res, err := estimator.Estimate(hand)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeInvalidCard, err.Error())
		return
	}

	s.logger.Debug("Estimate request", "total", res.PlayerTotal, "dealer", res.DealerUpcard)
	writeJSON(w, http.StatusOK, EstimateResponse{
		Result:         res,
		Recommendation: estimator.Recommend(res),
		Regime:         res.Regime().String(),
	})
}

func (s *Server) handleStrategy(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StrategyResponse{
		Headers: strategy.Headers,
		Rows:    strategy.Rows(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v) // Ignore write errors
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorData{Code: code, Message: message})
}
