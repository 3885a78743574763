package service

import (
	"errors"
	"testing"
	"time"

	"github.com/b2b-bazaar/internal/config"
	"github.com/b2b-bazaar/internal/constants"

	"github.com/mojocn/base64Captcha"
)

func newTestCaptchaService(t *testing.T, answers map[string]string) *CaptchaService {
	t.Helper()
	svc := NewCaptchaService(config.CaptchaConfig{
		Enabled: true,
		Scenes:  config.CaptchaSceneConfig{GuestEnquiry: true},
	})
	store := base64Captcha.NewMemoryStore(100, time.Minute)
	for id, answer := range answers {
		if err := store.Set(id, answer); err != nil {
			t.Fatalf("seed captcha failed: %v", err)
		}
	}
	svc.store = store
	return svc
}

func TestCaptchaVerifyByScene(t *testing.T) {
	svc := newTestCaptchaService(t, map[string]string{"c1": "k7m2p"})

	if err := svc.Verify(constants.CaptchaSceneSupplierApply, CaptchaVerifyPayload{}); err != nil {
		t.Fatalf("disabled scene should pass, got %v", err)
	}
	if err := svc.Verify(constants.CaptchaSceneGuestEnquiry, CaptchaVerifyPayload{}); !errors.Is(err, ErrCaptchaRequired) {
		t.Fatalf("missing payload want ErrCaptchaRequired, got %v", err)
	}
	if err := svc.Verify(constants.CaptchaSceneGuestEnquiry, CaptchaVerifyPayload{CaptchaID: "c1", CaptchaCode: "wrong"}); !errors.Is(err, ErrCaptchaInvalid) {
		t.Fatalf("wrong answer want ErrCaptchaInvalid, got %v", err)
	}
}

func TestCaptchaVerifyConsumesAnswer(t *testing.T) {
	svc := newTestCaptchaService(t, map[string]string{"c2": "k7m2p"})
	payload := CaptchaVerifyPayload{CaptchaID: " c2 ", CaptchaCode: "k7m2p"}

	if err := svc.Verify(constants.CaptchaSceneGuestEnquiry, payload); err != nil {
		t.Fatalf("correct answer should pass, got %v", err)
	}
	if err := svc.Verify(constants.CaptchaSceneGuestEnquiry, payload); !errors.Is(err, ErrCaptchaInvalid) {
		t.Fatalf("answer should be single use, got %v", err)
	}
}

func TestCaptchaDisabledService(t *testing.T) {
	svc := NewCaptchaService(config.CaptchaConfig{Enabled: false, Scenes: config.CaptchaSceneConfig{GuestEnquiry: true}})
	if svc.IsSceneEnabled(constants.CaptchaSceneGuestEnquiry) {
		t.Fatalf("disabled service should not require captcha")
	}
	if _, err := svc.GenerateImageChallenge(); !errors.Is(err, ErrCaptchaConfigInvalid) {
		t.Fatalf("disabled challenge want ErrCaptchaConfigInvalid, got %v", err)
	}
}

func TestNormalizeCaptchaConfigClampsRanges(t *testing.T) {
	cfg := normalizeCaptchaConfig(config.CaptchaConfig{Length: 20, Width: 10, ExpireSeconds: 5})
	if cfg.Length != 5 || cfg.Width != 240 || cfg.Height != 80 || cfg.ExpireSeconds != 300 || cfg.MaxStore != 10240 {
		t.Fatalf("unexpected normalized config: %+v", cfg)
	}
}
