package usecase

import (
	"context"
	"fmt"
	"strings"

	"crime-report/internal/data/entity"
	"crime-report/internal/data/repository"
	"crime-report/internal/dto/request"
	"crime-report/internal/dto/response"
	"crime-report/pkg/utils"

	"go.uber.org/zap"
)

type AuthService interface {
	SendOTP(ctx context.Context, req *request.SendOTPRequest) error
	VerifyOTP(ctx context.Context, req *request.VerifyOTPRequest) error
	Signup(ctx context.Context, req *request.SignupRequest) (*response.UserResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.LoginResponse, error)
}

type authService struct {
	users  repository.UserRepository
	otp    OTPService
	config utils.OTPConfig
	log    *zap.Logger
}

func NewAuthService(
	users repository.UserRepository,
	otp OTPService,
	config utils.OTPConfig,
	log *zap.Logger,
) AuthService {
	return &authService{
		users:  users,
		otp:    otp,
		config: config,
		log:    log,
	}
}

func (s *authService) SendOTP(ctx context.Context, req *request.SendOTPRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return newError(ErrValidation, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if _, err := s.otp.CreateOTP(ctx, strings.TrimSpace(req.Email)); err != nil {
		return err
	}
	return nil
}

func (s *authService) VerifyOTP(ctx context.Context, req *request.VerifyOTPRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return newError(ErrValidation, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	ok, err := s.otp.VerifyOTP(ctx, strings.TrimSpace(req.Email), strings.TrimSpace(req.OTP))
	if err != nil {
		return err
	}
	if !ok {
		return newError(ErrInvalidOTP, "Invalid or expired OTP")
	}
	return nil
}

func (s *authService) Signup(ctx context.Context, req *request.SignupRequest) (*response.UserResponse, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Signup validation failed", zap.Any("errors", errs))
		return nil, newError(ErrValidation, "validation failed: %s", utils.FormatValidationErrors(errs))
	}
	email := strings.TrimSpace(req.Email)

	// 2. Email must be unused, ignoring case
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to check email")
	}
	if existing != nil {
		return nil, newError(ErrConflict, "Email already registered")
	}

	// 3. OTP gate
	if s.config.RequiredForSignup {
		verified, err := s.otp.IsEmailVerified(ctx, email)
		if err != nil {
			s.log.Error("Failed to check OTP status", zap.Error(err), zap.String("email", email))
			return nil, fmt.Errorf("failed to check email verification")
		}
		if !verified {
			return nil, newError(ErrUnverified, "Email not verified. Please verify OTP first.")
		}
	}

	// 4. Hash password
	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to process password")
	}

	// 5. Save
	user := &entity.User{
		Name:          req.Name,
		Email:         email,
		AadhaarNumber: req.AadhaarNumber,
		PasswordHash:  hashed,
	}
	if err := s.users.Create(ctx, user); err != nil {
		s.log.Error("Failed to create user", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to create account")
	}

	s.log.Info("User registered", zap.Uint("user_id", user.ID), zap.String("email", user.Email))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.LoginResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, newError(ErrValidation, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("failed to find user")
	}
	if user == nil {
		s.log.Warn("User not found for login", zap.String("email", req.Email))
		return nil, newError(ErrInvalidCredentials, "Invalid credentials")
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.Uint("user_id", user.ID))
		return nil, newError(ErrInvalidCredentials, "Invalid credentials")
	}

	s.log.Info("User logged in", zap.Uint("user_id", user.ID))

	return &response.LoginResponse{
		Message: "Login successful",
		UserID:  user.ID,
		Name:    user.Name,
		Email:   user.Email,
	}, nil
}
