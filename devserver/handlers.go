package devserver

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/phaetex/efootball-client/models"
)

func (s *Server) handleTournamentConfig(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.tournament)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var input struct {
		FullName             string `json:"full_name"`
		RegNo                string `json:"reg_no"`
		EfootballUsername    string `json:"efootball_username"`
		Password             string `json:"password"`
		MpesaTransactionCode string `json:"mpesa_transaction_code"`
		PhoneNumber          string `json:"phone_number"`
	}
	if err := readJSON(w, r, &input); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	fullName := strings.TrimSpace(input.FullName)
	username := strings.TrimSpace(input.EfootballUsername)
	if fullName == "" || username == "" {
		s.errorResponse(w, http.StatusBadRequest, "full name and efootball username are required")
		return
	}
	if len(input.Password) < 8 {
		s.errorResponse(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		s.log.Error("failed to hash password", "error", err)
		s.errorResponse(w, http.StatusInternalServerError, "could not process registration")
		return
	}

	acc, err := s.store.createUser(fullName, username, string(hash), strings.TrimSpace(input.RegNo), models.RoleParticipant)
	if err != nil {
		if errors.Is(err, errUsernameTaken) {
			s.errorResponse(w, http.StatusConflict, err.Error())
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "could not create account")
		return
	}

	payment := s.store.createPayment(acc, strings.TrimSpace(input.MpesaTransactionCode), strings.TrimSpace(input.PhoneNumber), s.entryFee)
	s.log.Info("registration received",
		"user_id", acc.ID,
		"payment_id", payment.ID,
		"evidence", payment.Evidence(),
	)

	token, err := s.mintToken(acc)
	if err != nil {
		s.log.Error("failed to mint token", "error", err)
		s.errorResponse(w, http.StatusInternalServerError, "could not issue session token")
		return
	}

	s.writeJSON(w, http.StatusCreated, jsonResponse{
		"token":    token,
		"user":     acc.User,
		"verified": acc.IsParticipant,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var input struct {
		EfootballUsername string `json:"efootball_username"`
		Password          string `json:"password"`
	}
	if err := readJSON(w, r, &input); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	acc, err := s.store.userByUsername(strings.TrimSpace(input.EfootballUsername))
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "invalid username or password")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(acc.passwordHash), []byte(input.Password)) != nil {
		s.errorResponse(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	token, err := s.mintToken(acc)
	if err != nil {
		s.log.Error("failed to mint token", "error", err)
		s.errorResponse(w, http.StatusInternalServerError, "could not issue session token")
		return
	}

	s.writeJSON(w, http.StatusOK, jsonResponse{
		"token":    token,
		"user":     acc.User,
		"verified": acc.IsParticipant,
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	acc := accountFrom(r.Context())

	resp := jsonResponse{
		"user":     acc.User,
		"verified": acc.IsParticipant,
	}
	if payment := s.store.paymentByOwner(acc.ID); payment != nil {
		resp["participant"] = payment
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateMe(w http.ResponseWriter, r *http.Request) {
	acc := accountFrom(r.Context())

	var update models.ProfileUpdate
	if err := readJSON(w, r, &update); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := s.store.updateUser(acc.ID, update)
	if err != nil {
		if errors.Is(err, errUsernameTaken) {
			s.errorResponse(w, http.StatusConflict, err.Error())
			return
		}
		s.errorResponse(w, http.StatusNotFound, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, updated.User)
}

func (s *Server) handlePendingPayments(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, jsonResponse{"payments": s.store.pendingPayments()})
}

func (s *Server) handleVerifyPayment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		s.errorResponse(w, http.StatusBadRequest, "invalid payment id")
		return
	}

	var input struct {
		Action string `json:"action"`
	}
	if err := readJSON(w, r, &input); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if input.Action != "approve" && input.Action != "reject" {
		s.errorResponse(w, http.StatusBadRequest, "action must be approve or reject")
		return
	}

	if err := s.store.decidePayment(id, input.Action == "approve"); err != nil {
		switch {
		case errors.Is(err, errPaymentNotFound):
			s.errorResponse(w, http.StatusNotFound, err.Error())
		case errors.Is(err, errPaymentDecided):
			s.errorResponse(w, http.StatusConflict, err.Error())
		default:
			s.errorResponse(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	s.log.Info("payment decided", "payment_id", id, "action", input.Action)
	s.writeJSON(w, http.StatusOK, jsonResponse{"status": "ok"})
}

func (s *Server) handleCreateAdmin(w http.ResponseWriter, r *http.Request) {
	var input struct {
		FullName          string `json:"full_name"`
		EfootballUsername string `json:"efootball_username"`
		Password          string `json:"password"`
	}
	if err := readJSON(w, r, &input); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	fullName := strings.TrimSpace(input.FullName)
	username := strings.TrimSpace(input.EfootballUsername)
	if fullName == "" || username == "" || input.Password == "" {
		s.errorResponse(w, http.StatusBadRequest, "full name, efootball username and password are required")
		return
	}
	if len(input.Password) < 6 {
		s.errorResponse(w, http.StatusBadRequest, "password must be at least 6 characters")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		s.log.Error("failed to hash password", "error", err)
		s.errorResponse(w, http.StatusInternalServerError, "could not create admin")
		return
	}

	acc, err := s.store.createUser(fullName, username, string(hash), "", models.RoleAdmin)
	if err != nil {
		if errors.Is(err, errUsernameTaken) {
			s.errorResponse(w, http.StatusConflict, err.Error())
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "could not create admin")
		return
	}

	s.log.Info("admin account created", "user_id", acc.ID)
	s.writeJSON(w, http.StatusCreated, acc.User)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	role := models.Role(r.URL.Query().Get("role"))
	if role != "" && !role.Valid() {
		s.errorResponse(w, http.StatusBadRequest, "unknown role filter")
		return
	}
	s.writeJSON(w, http.StatusOK, jsonResponse{"users": s.store.listUsers(role)})
}
