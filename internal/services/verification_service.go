package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iclaudiumihaila/pe-foc-de-lemne-sub004/domain"
)

// VerificationConfig holds the tunables of the verification service.
type VerificationConfig struct {
	Length      int
	TTL         time.Duration
	MaxAttempts int
	VerifiedTTL time.Duration
	Locale      string
}

// defaultVerifiedTTL bounds how long a successful check stays spendable when
// no explicit window is configured.
const defaultVerifiedTTL = 30 * time.Minute

// VerificationServiceImpl implements domain.VerificationService. The code
// record lives in the expiring record store; the attempt counter is a plain
// Redis integer with the same TTL so decrements stay atomic per phone.
type VerificationServiceImpl struct {
	store    domain.RecordStore
	client   *redis.Client
	limiter  domain.RateLimiter
	notifier domain.NotificationService
	messages domain.MessageCatalog
	config   VerificationConfig
}

// NewVerificationService creates a new phone verification service.
func NewVerificationService(
	store domain.RecordStore,
	client *redis.Client,
	limiter domain.RateLimiter,
	notifier domain.NotificationService,
	messages domain.MessageCatalog,
	config VerificationConfig,
) domain.VerificationService {
	return &VerificationServiceImpl{
		store:    store,
		client:   client,
		limiter:  limiter,
		notifier: notifier,
		messages: messages,
		config:   config,
	}
}

func codeKey(phone string) string     { return "verify:code:" + phone }
func attemptsKey(phone string) string { return "verify:att:" + phone }
func verifiedKey(phone string) string { return "verify:ok:" + phone }

// IssueCode implements domain.VerificationService. Issuing overwrites any
// active code for the phone and resets its attempts. When the SMS dispatch
// fails the stored code survives, so a retried issue or manual resend can
// reuse it; the failure surfaces as ErrNotificationFailed, never as success.
func (s *VerificationServiceImpl) IssueCode(ctx context.Context, phone string) (*domain.VerificationCode, error) {
	normalized, err := NormalizePhone(phone)
	if err != nil {
		return nil, err
	}

	if err := s.limiter.Allow(ctx, normalized); err != nil {
		return nil, err
	}

	code, err := s.generateCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification code: %w", err)
	}

	now := time.Now()
	record := &domain.VerificationCode{
		Phone:     normalized,
		Code:      code,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.config.TTL),
	}

	if err := s.store.Put(ctx, codeKey(normalized), record, s.config.TTL); err != nil {
		return nil, fmt.Errorf("failed to store verification code: %w", err)
	}
	if err := s.client.Set(ctx, attemptsKey(normalized), s.config.MaxAttempts, s.config.TTL).Err(); err != nil {
		return nil, fmt.Errorf("failed to reset attempts counter: %w", err)
	}

	message := fmt.Sprintf(
		s.messages.Message("sms.verification_code", s.config.Locale),
		code, int(s.config.TTL.Minutes()),
	)
	if err := s.notifier.SendSMS(normalized, message); err != nil {
		log.Printf("verification: sms dispatch to %s failed: %v", normalized, err)
		return record, domain.ErrNotificationFailed
	}

	return record, nil
}

// VerifyCode implements domain.VerificationService. Expiry wins over attempt
// accounting: an expired code reads as not found and never burns an attempt.
// A match consumes the code atomically, so if two submissions of the correct
// code race only one succeeds; success leaves a verified mark the order flow
// later spends. A mismatch atomically decrements the counter and deletes the
// code once attempts run out.
func (s *VerificationServiceImpl) VerifyCode(ctx context.Context, phone, submittedCode string) (int, error) {
	normalized, err := NormalizePhone(phone)
	if err != nil {
		return 0, err
	}

	var record domain.VerificationCode
	found, err := s.store.Get(ctx, codeKey(normalized), &record)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, domain.ErrCodeNotFound
	}

	if record.Code == submittedCode {
		var consumed domain.VerificationCode
		taken, err := s.store.Take(ctx, codeKey(normalized), &consumed)
		if err != nil {
			return 0, err
		}
		if !taken {
			// A concurrent submission already consumed the code.
			return 0, domain.ErrCodeNotFound
		}
		if consumed.Code != submittedCode {
			// A fresh code was issued between the read and the consume;
			// put it back and treat the submission as stale.
			s.store.Put(ctx, codeKey(normalized), &consumed, time.Until(consumed.ExpiresAt))
			return 0, domain.ErrCodeNotFound
		}

		s.client.Del(ctx, attemptsKey(normalized))

		if err := s.markVerified(ctx, normalized); err != nil {
			return 0, err
		}
		return 0, nil
	}

	remaining, err := s.client.Decr(ctx, attemptsKey(normalized)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to decrement attempts: %w", err)
	}
	if remaining <= 0 {
		s.store.Delete(ctx, codeKey(normalized))
		s.client.Del(ctx, attemptsKey(normalized))
		return 0, domain.ErrCodeAttemptsExhausted
	}

	return int(remaining), domain.ErrCodeMismatch
}

// ConsumeVerification implements domain.VerificationService. The mark is
// taken atomically so a verified phone backs at most one order.
func (s *VerificationServiceImpl) ConsumeVerification(ctx context.Context, phone string) error {
	normalized, err := NormalizePhone(phone)
	if err != nil {
		return err
	}

	var mark domain.PhoneVerification
	taken, err := s.store.Take(ctx, verifiedKey(normalized), &mark)
	if err != nil {
		return err
	}
	if !taken {
		return domain.ErrPhoneNotVerified
	}
	return nil
}

// markVerified records a successful check for the phone. The mark outlives
// the consumed code so the customer can finish checkout at their own pace.
func (s *VerificationServiceImpl) markVerified(ctx context.Context, normalized string) error {
	ttl := s.config.VerifiedTTL
	if ttl <= 0 {
		ttl = defaultVerifiedTTL
	}

	now := time.Now()
	mark := &domain.PhoneVerification{
		Phone:      normalized,
		VerifiedAt: now,
		ExpiresAt:  now.Add(ttl),
	}
	if err := s.store.Put(ctx, verifiedKey(normalized), mark, ttl); err != nil {
		return fmt.Errorf("failed to store verified mark: %w", err)
	}
	return nil
}

// generateCode produces a uniformly random zero-padded numeric code.
func (s *VerificationServiceImpl) generateCode() (string, error) {
	digits := make([]byte, s.config.Length)

	for i := 0; i < s.config.Length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + num.Int64())
	}

	return string(digits), nil
}
