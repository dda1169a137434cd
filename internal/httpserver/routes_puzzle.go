// internal/httpserver/routes_puzzle.go
//
// HTTP routes for the daily puzzle.
//   - GET  /tiles    → today's shuffled tiles, or the answer once finished
//   - POST /validate → score an arrangement, spending one guess
//   - GET  /stats    → today's outcome buckets
//   - GET  /version  → today's seed, for client cache-busting
//
// Tiles leave the server as {tileId, top, bottom}; position and the
// canonical flip stay behind.

package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/robalobadob/quotetiles/internal/game"
	"github.com/robalobadob/quotetiles/internal/puzzle"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("tileid", validateTileID)
}

// validateTileID accepts exactly the ids the hasher issues: 32 lowercase hex
// characters, no prefix.
func validateTileID(fl validator.FieldLevel) bool {
	id := fl.Field().String()
	if len(id) != puzzle.TileIDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// displayTile is what a client sees of a tile.
type displayTile struct {
	TileID string `json:"tileId"`
	Top    string `json:"top"`
	Bottom string `json:"bottom"`
}

type tilesRes struct {
	Tiles       []displayTile `json:"tiles"`
	GuessNumber int           `json:"guessNumber"`
	Solved      bool          `json:"solved"`
}

type finishedRes struct {
	GuessNumber     int    `json:"guessNumber"`
	Solved          bool   `json:"solved"`
	CompletedTop    string `json:"completedTop"`
	CompletedBottom string `json:"completedBottom"`
	TotalSessions   int    `json:"totalSessions"`
	SolvedCount     int    `json:"solvedCount"`
	SolvedIn1       int    `json:"solvedIn1"`
	SolvedIn2       int    `json:"solvedIn2"`
	SolvedIn3       int    `json:"solvedIn3"`
	Failed          int    `json:"failed"`
}

// handleTiles serves today's board for the caller's session.
func (s *Server) handleTiles(w http.ResponseWriter, r *http.Request) {
	res, err := s.game.Tiles(r.Context(), r.Header.Get(SessionHeader))
	if err != nil {
		fail(w, r, err)
		return
	}
	w.Header().Set(SessionHeader, res.SessionID)

	if res.State.Finished() {
		out := finishedRes{
			GuessNumber:     res.GuessNumber,
			Solved:          res.Solved,
			CompletedTop:    res.CompletedTop,
			CompletedBottom: res.CompletedBottom,
		}
		if st := res.Stats; st != nil {
			out.TotalSessions = st.Total
			out.SolvedCount = st.Solved()
			out.SolvedIn1, out.SolvedIn2, out.SolvedIn3 = st.SolvedIn1, st.SolvedIn2, st.SolvedIn3
			out.Failed = st.Failed
		}
		writeJSON(w, http.StatusOK, out)
		return
	}

	tiles := make([]displayTile, len(res.Tiles))
	for i, t := range res.Tiles {
		tiles[i] = displayTile{TileID: t.ID, Top: t.Top, Bottom: t.Bottom}
	}
	writeJSON(w, http.StatusOK, tilesRes{Tiles: tiles, GuessNumber: res.GuessNumber, Solved: res.Solved})
}

// placement is one tile of a submitted arrangement.
type placement struct {
	TileID    string `json:"tileId" validate:"required,tileid"`
	IsFlipped *bool  `json:"isFlipped" validate:"required"`
}

type validateReq struct {
	UserState []placement `json:"userState" validate:"required,min=1,max=10,dive"`
}

type validateRes struct {
	Result          bool   `json:"result"`
	CompletedTop    string `json:"completedTop,omitempty"`
	CompletedBottom string `json:"completedBottom,omitempty"`
	GuessNumber     int    `json:"guessNumber"`
	OrderCheck      []bool `json:"orderCheck,omitempty"`
}

// handleValidate scores a submitted arrangement.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, r, fmt.Errorf("%w: bad json", game.ErrMalformedSubmission))
		return
	}
	if err := validate.Struct(req); err != nil {
		fail(w, r, fmt.Errorf("%w: %v", game.ErrMalformedSubmission, err))
		return
	}

	sub := make([]puzzle.Placement, len(req.UserState))
	for i, p := range req.UserState {
		sub[i] = puzzle.Placement{TileID: p.TileID, Flipped: *p.IsFlipped}
	}

	res, err := s.game.Validate(r.Context(), r.Header.Get(SessionHeader), sub)
	if err != nil {
		fail(w, r, err)
		return
	}
	w.Header().Set(SessionHeader, res.SessionID)
	writeJSON(w, http.StatusOK, validateRes{
		Result:          res.Result,
		CompletedTop:    res.CompletedTop,
		CompletedBottom: res.CompletedBottom,
		GuessNumber:     res.GuessNumber,
		OrderCheck:      res.OrderCheck,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.game.Stats(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]int64{"server_date": s.game.Seed()})
}
