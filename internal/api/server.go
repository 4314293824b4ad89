package api

import (
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/tokenmart/tokenmart"
	"github.com/tokenmart/tokenmart/app"
	"github.com/tokenmart/tokenmart/coin"
	"github.com/tokenmart/tokenmart/errors"
	"github.com/tokenmart/tokenmart/x/cash"
	"github.com/tokenmart/tokenmart/x/market"
	"github.com/tokenmart/tokenmart/x/nft"
)

// Server exposes the state machine over HTTP. Transactions are submitted to
// a single endpoint and routed by message path; reads go through dedicated
// endpoints.
type Server struct {
	sm     *app.StateMachine
	tokens nft.Controller
	bank   cash.Controller
	proto  map[string]func() tokenmart.Msg
}

// NewServer returns a server working against the given state machine.
func NewServer(sm *app.StateMachine) *Server {
	s := &Server{
		sm:     sm,
		tokens: nft.NewController(),
		bank:   cash.NewController(),
		proto:  make(map[string]func() tokenmart.Msg),
	}
	for _, newMsg := range []func() tokenmart.Msg{
		func() tokenmart.Msg { return &nft.IssueTokenMsg{} },
		func() tokenmart.Msg { return &market.CreateListingMsg{} },
		func() tokenmart.Msg { return &market.BuyTokenMsg{} },
		func() tokenmart.Msg { return &market.DelistTokenMsg{} },
		func() tokenmart.Msg { return &market.ProposeSwapMsg{} },
		func() tokenmart.Msg { return &market.AcceptSwapMsg{} },
		func() tokenmart.Msg { return &market.UpdateConfigurationMsg{} },
	} {
		s.proto[newMsg().Path()] = newMsg
	}
	return s
}

// Router builds the HTTP routing table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/tx", s.submitTx).Methods("POST")
	r.HandleFunc("/tokens/{id:[0-9]+}", s.getToken).Methods("GET")
	r.HandleFunc("/tokens/{id:[0-9]+}/listing", s.getListing).Methods("GET")
	r.HandleFunc("/tokens/{id:[0-9]+}/offer", s.getOffer).Methods("GET")
	r.HandleFunc("/supply", s.getSupply).Methods("GET")
	r.HandleFunc("/listings", s.getListings).Methods("GET")
	r.HandleFunc("/offers", s.getOffers).Methods("GET")
	r.HandleFunc("/configuration", s.getConfiguration).Methods("GET")
	r.HandleFunc("/balances/{address}", s.getBalance).Methods("GET")
	r.HandleFunc("/signers/{name}", s.getSignerAddress).Methods("GET")
	r.HandleFunc("/health", s.health).Methods("GET")
	return r
}

type txRequest struct {
	Path string          `json:"path"`
	Msg  json.RawMessage `json:"msg"`
}

type txResponse struct {
	Data   []byte            `json:"data,omitempty"`
	Log    string            `json:"log,omitempty"`
	Events []tokenmart.Event `json:"events,omitempty"`
}

func (s *Server) submitTx(w http.ResponseWriter, r *http.Request) {
	signer := r.Header.Get("X-Signer")
	if signer == "" {
		writeError(w, errors.Wrap(errors.ErrUnauthorized, "missing X-Signer header"))
		return
	}

	var req txRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrInput, err.Error()))
		return
	}
	newMsg, ok := s.proto[req.Path]
	if !ok {
		writeError(w, errors.Wrapf(errors.ErrNotFound, "unknown message path %q", req.Path))
		return
	}
	msg := newMsg()
	if err := json.Unmarshal(req.Msg, msg); err != nil {
		writeError(w, errors.Wrap(errors.ErrInput, err.Error()))
		return
	}

	ctx := withSigner(r.Context(), signer)
	res, err := s.sm.DeliverTx(ctx, &markettx{msg: msg})
	if err != nil {
		zap.L().With(
			zap.String("path", req.Path),
			zap.String("signer", signer),
			zap.Error(err),
		).Info("transaction rejected")
		writeError(w, err)
		return
	}

	zap.L().With(
		zap.String("path", req.Path),
		zap.String("signer", signer),
	).Info("transaction delivered")
	writeJSON(w, http.StatusOK, txResponse{Data: res.Data, Log: res.Log, Events: res.Events})
}

func (s *Server) getToken(w http.ResponseWriter, r *http.Request) {
	id := tokenID(r)
	var token *nft.Token
	err := s.sm.View(func(db tokenmart.ReadOnlyKVStore) error {
		var err error
		token, err = s.tokens.Get(db, id)
		return err
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, token)
}

func (s *Server) getListing(w http.ResponseWriter, r *http.Request) {
	id := tokenID(r)
	var listing market.Listing
	err := s.sm.View(func(db tokenmart.ReadOnlyKVStore) error {
		var err error
		listing, err = market.GetListing(db, id)
		return err
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listing)
}

func (s *Server) getOffer(w http.ResponseWriter, r *http.Request) {
	id := tokenID(r)
	var offer market.SwapOffer
	err := s.sm.View(func(db tokenmart.ReadOnlyKVStore) error {
		var err error
		offer, err = market.GetSwapOffer(db, id)
		return err
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, offer)
}

func (s *Server) getSupply(w http.ResponseWriter, r *http.Request) {
	var total int64
	err := s.sm.View(func(db tokenmart.ReadOnlyKVStore) error {
		var err error
		total, err = s.tokens.TotalSupply(db)
		return err
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"total_supply": total})
}

func (s *Server) getListings(w http.ResponseWriter, r *http.Request) {
	var active []market.Listing
	err := s.sm.View(func(db tokenmart.ReadOnlyKVStore) error {
		var err error
		active, err = market.ActiveListings(db)
		return err
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, active)
}

func (s *Server) getOffers(w http.ResponseWriter, r *http.Request) {
	var open []market.SwapOffer
	err := s.sm.View(func(db tokenmart.ReadOnlyKVStore) error {
		var err error
		open, err = market.OpenSwapOffers(db)
		return err
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, open)
}

func (s *Server) getConfiguration(w http.ResponseWriter, r *http.Request) {
	var conf market.Configuration
	err := s.sm.View(func(db tokenmart.ReadOnlyKVStore) error {
		var err error
		conf, err = market.GetConfiguration(db)
		return err
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, conf)
}

func (s *Server) getBalance(w http.ResponseWriter, r *http.Request) {
	raw, err := hex.DecodeString(mux.Vars(r)["address"])
	if err != nil {
		writeError(w, errors.Wrapf(errors.ErrInput, "malformed address: %s", err))
		return
	}
	addr := tokenmart.Address(raw)
	if err := addr.Validate(); err != nil {
		writeError(w, err)
		return
	}

	var balance coin.Coins
	err = s.sm.View(func(db tokenmart.ReadOnlyKVStore) error {
		var err error
		balance, err = s.bank.Balance(db, addr)
		return err
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, balance)
}

func (s *Server) getSignerAddress(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	writeJSON(w, http.StatusOK, map[string]string{
		"name":    name,
		"address": SignerAddress(name).String(),
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func tokenID(r *http.Request) int64 {
	// the route pattern guarantees digits only
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id
}

func writeJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	code := http.StatusBadRequest
	switch {
	case errors.ErrNotFound.Is(err):
		code = http.StatusNotFound
	case errors.ErrUnauthorized.Is(err):
		code = http.StatusForbidden
	}
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

// markettx adapts a single message to the transaction interface used by the
// state machine.
type markettx struct {
	msg tokenmart.Msg
}

var _ tokenmart.Tx = (*markettx)(nil)

func (tx *markettx) GetMsg() (tokenmart.Msg, error) {
	return tx.msg, nil
}

func (tx *markettx) Marshal() ([]byte, error) {
	return tx.msg.Marshal()
}

func (tx *markettx) Unmarshal(raw []byte) error {
	return tx.msg.Unmarshal(raw)
}
