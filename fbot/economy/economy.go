// Package economy keeps a per-guild virtual currency ledger backing
// the balance, daily and pay commands.
package economy

import (
	"errors"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/disgoorg/snowflake/v2"
)

const (
	// startingBalance is credited implicitly on a member's first touch.
	startingBalance = 100

	minDailyReward = 100
	maxDailyReward = 500
	dailyCooldown  = 24 * time.Hour
)

var (
	ErrDailyClaimed      = errors.New("economy: daily reward already claimed")
	ErrInvalidAmount     = errors.New("economy: amount must be positive")
	ErrInsufficientFunds = errors.New("economy: insufficient balance")
)

// Account is one member's holdings. Total worth is Balance plus Bank.
type Account struct {
	UserID  snowflake.ID
	Balance int
	Bank    int
}

func (a Account) Total() int {
	return a.Balance + a.Bank
}

type memberKey struct {
	Guild snowflake.ID
	User  snowflake.ID
}

type account struct {
	Account
	lastDaily time.Time
}

type Vault struct {
	mu       sync.Mutex
	accounts map[memberKey]*account
	reward   func() int
	now      func() time.Time
}

func NewVault() *Vault {
	return &Vault{
		accounts: make(map[memberKey]*account),
		reward: func() int {
			return minDailyReward + rand.Intn(maxDailyReward-minDailyReward+1)
		},
		now: time.Now,
	}
}

func (v *Vault) getLocked(key memberKey) *account {
	acct := v.accounts[key]
	if acct == nil {
		acct = &account{Account: Account{UserID: key.User, Balance: startingBalance}}
		v.accounts[key] = acct
	}
	return acct
}

// Account returns a copy of the member's holdings. A member that has
// never been touched holds the starting balance.
func (v *Vault) Account(guildID, userID snowflake.ID) Account {
	v.mu.Lock()
	defer v.mu.Unlock()
	if acct, ok := v.accounts[memberKey{Guild: guildID, User: userID}]; ok {
		return acct.Account
	}
	return Account{UserID: userID, Balance: startingBalance}
}

// Daily credits the member's daily reward and returns the amount.
// Claims inside the cooldown fail with ErrDailyClaimed.
func (v *Vault) Daily(guildID, userID snowflake.ID) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	acct := v.getLocked(memberKey{Guild: guildID, User: userID})
	now := v.now()
	if !acct.lastDaily.IsZero() && now.Sub(acct.lastDaily) < dailyCooldown {
		return 0, ErrDailyClaimed
	}

	reward := v.reward()
	acct.Balance += reward
	acct.lastDaily = now
	return reward, nil
}

// Pay moves amount from one member's balance to another's.
func (v *Vault) Pay(guildID, fromID, toID snowflake.ID, amount int) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	sender := v.getLocked(memberKey{Guild: guildID, User: fromID})
	if sender.Balance < amount {
		return ErrInsufficientFunds
	}
	receiver := v.getLocked(memberKey{Guild: guildID, User: toID})

	sender.Balance -= amount
	receiver.Balance += amount
	return nil
}

// Top returns the guild's accounts ordered by total worth.
func (v *Vault) Top(guildID snowflake.ID, limit int) []Account {
	v.mu.Lock()
	var out []Account
	for key, acct := range v.accounts {
		if key.Guild == guildID {
			out = append(out, acct.Account)
		}
	}
	v.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Total() != out[j].Total() {
			return out[i].Total() > out[j].Total()
		}
		return out[i].UserID < out[j].UserID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
