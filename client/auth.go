package client

import (
	"context"
	"net/http"
)

type registerReq struct {
	Email           string `json:"email"`
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register creates an account. The server never returns the new identity;
// callers log in afterwards.
func (s *Store) Register(ctx context.Context, email, username, password, confirmPassword string) error {
	s.beginOp()
	defer s.endOp()

	in := registerReq{Email: email, Username: username, Password: password, ConfirmPassword: confirmPassword}
	if err := s.doJSON(ctx, http.MethodPost, "/api/auth/register", in, nil); err != nil {
		s.setFeedback(FeedbackError, "Registration failed.")
		return err
	}
	s.setFeedback(FeedbackSuccess, "Registration successful!")
	return nil
}

// Login exchanges credentials for the user's identifier and stores it as
// the session identity.
func (s *Store) Login(ctx context.Context, username, password string) (string, error) {
	s.beginOp()
	defer s.endOp()

	var out struct {
		UserID string `json:"userId"`
	}
	if err := s.doJSON(ctx, http.MethodPost, "/api/auth/login", loginReq{Username: username, Password: password}, &out); err != nil {
		s.setFeedback(FeedbackError, "Login failed.")
		return "", err
	}

	s.SetUser(out.UserID)
	s.setFeedback(FeedbackSuccess, "Logged in successfully!")
	return out.UserID, nil
}
