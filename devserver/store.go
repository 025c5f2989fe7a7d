package devserver

import (
	"errors"
	"sync"

	"github.com/phaetex/efootball-client/models"
)

var (
	errUserNotFound    = errors.New("user not found")
	errUsernameTaken   = errors.New("efootball username is already taken")
	errPaymentNotFound = errors.New("payment not found")
	errPaymentDecided  = errors.New("payment has already been decided")
)

type account struct {
	models.User
	passwordHash string
	regNo        string
}

// store is the in-memory state behind the stub backend. Usernames are
// unique and case-sensitive as stored, matching the real backend.
type store struct {
	mu            sync.Mutex
	nextUserID    int
	nextPaymentID int
	users         map[int]*account
	byUsername    map[string]*account
	payments      map[int]*models.PendingPayment
	paymentOwner  map[int]int
}

func newStore() *store {
	return &store{
		nextUserID:    1,
		nextPaymentID: 1,
		users:         make(map[int]*account),
		byUsername:    make(map[string]*account),
		payments:      make(map[int]*models.PendingPayment),
		paymentOwner:  make(map[int]int),
	}
}

func (st *store) createUser(fullName, username, passwordHash, regNo string, role models.Role) (*account, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, exists := st.byUsername[username]; exists {
		return nil, errUsernameTaken
	}
	acc := &account{
		User: models.User{
			ID:                st.nextUserID,
			FullName:          fullName,
			EfootballUsername: username,
			Role:              role,
		},
		passwordHash: passwordHash,
		regNo:        regNo,
	}
	st.nextUserID++
	st.users[acc.ID] = acc
	st.byUsername[username] = acc
	return acc, nil
}

func (st *store) userByID(id int) (*account, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	acc, ok := st.users[id]
	if !ok {
		return nil, errUserNotFound
	}
	return acc, nil
}

func (st *store) userByUsername(username string) (*account, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	acc, ok := st.byUsername[username]
	if !ok {
		return nil, errUserNotFound
	}
	return acc, nil
}

func (st *store) updateUser(id int, update models.ProfileUpdate) (*account, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	acc, ok := st.users[id]
	if !ok {
		return nil, errUserNotFound
	}
	if update.FullName != nil {
		acc.FullName = *update.FullName
	}
	if update.EfootballUsername != nil && *update.EfootballUsername != acc.EfootballUsername {
		if _, exists := st.byUsername[*update.EfootballUsername]; exists {
			return nil, errUsernameTaken
		}
		delete(st.byUsername, acc.EfootballUsername)
		acc.EfootballUsername = *update.EfootballUsername
		st.byUsername[acc.EfootballUsername] = acc
	}
	if update.AvatarURL != nil {
		acc.AvatarURL = *update.AvatarURL
	}
	return acc, nil
}

func (st *store) listUsers(role models.Role) []models.User {
	st.mu.Lock()
	defer st.mu.Unlock()
	users := make([]models.User, 0, len(st.users))
	for id := 1; id < st.nextUserID; id++ {
		acc, ok := st.users[id]
		if !ok {
			continue
		}
		if role != "" && acc.Role != role {
			continue
		}
		users = append(users, acc.User)
	}
	return users
}

func (st *store) createPayment(owner *account, code, phone string, amount int) *models.PendingPayment {
	st.mu.Lock()
	defer st.mu.Unlock()
	p := &models.PendingPayment{
		ID:                   st.nextPaymentID,
		FullName:             owner.FullName,
		EfootballUsername:    owner.EfootballUsername,
		MpesaTransactionCode: code,
		PhoneNumber:          phone,
		Amount:               amount,
		Status:               models.PaymentPending,
	}
	st.nextPaymentID++
	st.payments[p.ID] = p
	st.paymentOwner[p.ID] = owner.ID
	return p
}

func (st *store) paymentByOwner(userID int) *models.PendingPayment {
	st.mu.Lock()
	defer st.mu.Unlock()
	for id, owner := range st.paymentOwner {
		if owner == userID {
			copied := *st.payments[id]
			return &copied
		}
	}
	return nil
}

// pendingPayments returns only undecided items; decided payments
// disappear from the collection.
func (st *store) pendingPayments() []models.PendingPayment {
	st.mu.Lock()
	defer st.mu.Unlock()
	pending := make([]models.PendingPayment, 0, len(st.payments))
	for id := 1; id < st.nextPaymentID; id++ {
		p, ok := st.payments[id]
		if !ok || p.Status != models.PaymentPending {
			continue
		}
		pending = append(pending, *p)
	}
	return pending
}

// decidePayment applies the pending -> approved/rejected transition.
// Terminal states are immutable; deciding twice fails. Approval is the
// only path that sets the owner's is_participant flag.
func (st *store) decidePayment(id int, approve bool) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	p, ok := st.payments[id]
	if !ok {
		return errPaymentNotFound
	}
	if p.Status.Terminal() {
		return errPaymentDecided
	}
	if approve {
		p.Status = models.PaymentApproved
		if owner, ok := st.users[st.paymentOwner[id]]; ok {
			owner.IsParticipant = true
		}
	} else {
		p.Status = models.PaymentRejected
	}
	return nil
}
