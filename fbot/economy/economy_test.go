package economy

import (
	"errors"
	"testing"
	"time"

	"github.com/disgoorg/snowflake/v2"
)

const (
	testGuild = snowflake.ID(100)
	testUser  = snowflake.ID(200)
	otherUser = snowflake.ID(201)
)

func TestAccountStartsWithSeedBalance(t *testing.T) {
	v := NewVault()

	acct := v.Account(testGuild, testUser)
	if acct.Balance != 100 || acct.Bank != 0 {
		t.Errorf("account = %+v, want the starting balance", acct)
	}
}

func TestDailyCreditsReward(t *testing.T) {
	v := NewVault()
	v.reward = func() int { return 250 }

	reward, err := v.Daily(testGuild, testUser)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reward != 250 {
		t.Errorf("reward = %d, want 250", reward)
	}
	if got := v.Account(testGuild, testUser).Balance; got != 350 {
		t.Errorf("balance = %d, want 350", got)
	}
}

func TestDailyEnforcesCooldown(t *testing.T) {
	v := NewVault()
	v.reward = func() int { return 250 }

	clock := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	v.now = func() time.Time { return clock }

	if _, err := v.Daily(testGuild, testUser); err != nil {
		t.Fatalf("first claim: %v", err)
	}

	clock = clock.Add(23 * time.Hour)
	if _, err := v.Daily(testGuild, testUser); !errors.Is(err, ErrDailyClaimed) {
		t.Fatalf("claim inside cooldown: err = %v, want ErrDailyClaimed", err)
	}

	clock = clock.Add(2 * time.Hour)
	if _, err := v.Daily(testGuild, testUser); err != nil {
		t.Fatalf("claim after cooldown: %v", err)
	}
}

func TestPayTransfersBalance(t *testing.T) {
	v := NewVault()

	if err := v.Pay(testGuild, testUser, otherUser, 40); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := v.Account(testGuild, testUser).Balance; got != 60 {
		t.Errorf("sender balance = %d, want 60", got)
	}
	if got := v.Account(testGuild, otherUser).Balance; got != 140 {
		t.Errorf("receiver balance = %d, want 140", got)
	}
}

func TestPayRejectsBadAmounts(t *testing.T) {
	v := NewVault()

	if err := v.Pay(testGuild, testUser, otherUser, 0); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("zero amount: err = %v, want ErrInvalidAmount", err)
	}
	if err := v.Pay(testGuild, testUser, otherUser, -5); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("negative amount: err = %v, want ErrInvalidAmount", err)
	}
	if err := v.Pay(testGuild, testUser, otherUser, 500); !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("overdraft: err = %v, want ErrInsufficientFunds", err)
	}

	// A failed payment must leave both sides untouched.
	if got := v.Account(testGuild, otherUser).Balance; got != 100 {
		t.Errorf("receiver balance = %d, want 100", got)
	}
}

func TestTopOrdersByTotalWorth(t *testing.T) {
	v := NewVault()

	seed := func(user snowflake.ID, balance, bank int) {
		v.mu.Lock()
		v.accounts[memberKey{Guild: testGuild, User: user}] = &account{
			Account: Account{UserID: user, Balance: balance, Bank: bank},
		}
		v.mu.Unlock()
	}
	seed(1, 50, 500)
	seed(2, 400, 0)
	seed(3, 100, 100)

	top := v.Top(testGuild, 2)
	if len(top) != 2 {
		t.Fatalf("len(top) = %d, want 2", len(top))
	}
	if top[0].UserID != 1 {
		t.Errorf("top[0] = %s, want user 1 (bank counts toward worth)", top[0].UserID)
	}
	if top[1].UserID != 2 {
		t.Errorf("top[1] = %s, want user 2", top[1].UserID)
	}
}
