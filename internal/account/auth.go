package account

import (
	"regexp"
	"unicode/utf8"
)

// User-facing messages, carried over from the original service verbatim.
const (
	MsgTermsRequired   = "서비스 이용약관에 동의하셔야 가입이 가능합니다."
	MsgInvalidEmail    = "유효한 이메일 주소를 입력해주세요."
	MsgPasswordMatch   = "비밀번호가 일치하지 않습니다."
	MsgPasswordLength  = "비밀번호는 8자리 이상만 사용 가능합니다."
	MsgAlreadyMember   = "이미 가입된 회원입니다."
	MsgSignupComplete  = "회원가입이 완료되었습니다."
	MsgBadEmailFormat  = "이메일 형식이 올바르지 않습니다."
	MsgNotRegistered   = "가입되지 않은 이메일입니다. 먼저 회원가입을 진행해주세요."
	MsgLoginSuccessful = "로그인에 성공했습니다."
)

// minPasswordLength is the inclusive lower bound on password length,
// counted in characters, not bytes.
const minPasswordLength = 8

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Result is the outcome of a signup or login attempt. Failures carry the
// first failing validation message; they are values, not errors.
type Result struct {
	Success bool
	Message string
}

// Service validates signup and login requests against a [CredentialStore].
type Service struct {
	credentials *CredentialStore
}

// NewService creates an auth service over the given credential store.
func NewService(credentials *CredentialStore) *Service {
	return &Service{credentials: credentials}
}

// ValidEmail reports whether email matches the local@domain.tld shape.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// Signup validates a registration request and persists the credential on
// success. Checks short-circuit in a fixed order: terms agreement, email
// shape, password confirmation, password length, duplicate registration.
func (s *Service) Signup(email, password, confirmPassword string, agreeTerms bool) Result {
	if !agreeTerms {
		return Result{Message: MsgTermsRequired}
	}
	if !ValidEmail(email) {
		return Result{Message: MsgInvalidEmail}
	}
	if password != confirmPassword {
		return Result{Message: MsgPasswordMatch}
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		return Result{Message: MsgPasswordLength}
	}
	if _, exists := s.credentials.Lookup(email); exists {
		return Result{Message: MsgAlreadyMember}
	}

	if err := s.credentials.Register(email, password); err != nil {
		// Lost a race with another registration for the same email.
		return Result{Message: MsgAlreadyMember}
	}

	return Result{Success: true, Message: MsgSignupComplete}
}

// Login validates a login request against the stored credential.
func (s *Service) Login(email, password string) Result {
	if !ValidEmail(email) {
		return Result{Message: MsgBadEmailFormat}
	}

	stored, ok := s.credentials.Lookup(email)
	if !ok {
		return Result{Message: MsgNotRegistered}
	}
	if stored != password {
		return Result{Message: MsgPasswordMatch}
	}

	return Result{Success: true, Message: MsgLoginSuccessful}
}
