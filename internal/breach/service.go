package breach

import "context"

// Service groups the two lookup clients behind the shape the API expects.
type Service struct {
	Passwords *PasswordClient
	Directory *DirectoryClient
}

func (s *Service) CheckPassword(ctx context.Context, password string) (PasswordResult, error) {
	return s.Passwords.Check(ctx, password)
}

func (s *Service) CheckEmail(ctx context.Context, email string) (EmailResult, error) {
	return s.Directory.Check(ctx, email)
}
