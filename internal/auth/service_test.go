package auth_test

import (
	"errors"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/horvathbencetibor/booking-system-be/internal"
	"github.com/horvathbencetibor/booking-system-be/internal/auth"
)

func TestAuthService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Service Suite")
}

type mockRepository struct {
	credentials map[string]*auth.Credential
	principals  map[int64]*auth.User
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		credentials: make(map[string]*auth.Credential),
		principals:  make(map[int64]*auth.User),
	}
}

func (m *mockRepository) GetCredentialsByEmail(email string) (*auth.Credential, error) {
	cred, ok := m.credentials[email]
	if !ok {
		return nil, errors.New("no rows")
	}
	return cred, nil
}

func (m *mockRepository) GetPrincipal(userID int64) (*auth.User, error) {
	u, ok := m.principals[userID]
	if !ok {
		return nil, errors.New("no rows")
	}
	return u, nil
}

func (m *mockRepository) addUser(id int64, name, email, password string, permissions ...string) {
	hash, err := auth.HashPassword(password, 4)
	Expect(err).NotTo(HaveOccurred())
	m.credentials[email] = &auth.Credential{UserID: id, PasswordHash: hash}
	m.principals[id] = &auth.User{ID: id, Name: name, Email: email, Permissions: permissions}
}

var _ = Describe("Auth Service", func() {
	var (
		repo    *mockRepository
		service *auth.Service
	)

	BeforeEach(func() {
		repo = newMockRepository()
		repo.addUser(1, "Admin", "admin@example.com", "admin", "ADMIN")
		service = auth.NewService(repo, auth.NewJWTTokenGenerator("test-secret-of-decent-length", 2*time.Hour))
	})

	Describe("Authenticate", func() {
		It("should return a token that validates back to the same identity", func() {
			result, err := service.Authenticate(auth.LoginDTO{Email: "admin@example.com", Password: "admin"})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Token).NotTo(BeEmpty())
			Expect(result.User.Email).To(Equal("admin@example.com"))

			claims, err := service.ValidateToken(result.Token)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.UserID).To(Equal(int64(1)))
			Expect(claims.Email).To(Equal("admin@example.com"))
		})

		It("should reject a wrong password with the generic credential error", func() {
			_, err := service.Authenticate(auth.LoginDTO{Email: "admin@example.com", Password: "nope"})
			Expect(err).To(Equal(internal.ErrInvalidCredentials))
		})

		It("should reject an unknown email with the same error as a wrong password", func() {
			_, err := service.Authenticate(auth.LoginDTO{Email: "ghost@example.com", Password: "admin"})
			Expect(err).To(Equal(internal.ErrInvalidCredentials))
		})

		It("should reject empty credentials before touching the repository", func() {
			_, err := service.Authenticate(auth.LoginDTO{})
			Expect(err).To(HaveOccurred())
			Expect(err).NotTo(Equal(internal.ErrInvalidCredentials))
		})
	})

	Describe("ValidateToken", func() {
		It("should reject an expired token", func() {
			expired := auth.NewJWTTokenGenerator("test-secret-of-decent-length", -time.Minute)
			token, err := expired.Generate(1, "admin@example.com")
			Expect(err).NotTo(HaveOccurred())

			_, err = service.ValidateToken(token)
			Expect(err).To(Equal(internal.ErrTokenExpired))
		})

		It("should reject a token signed with a different secret", func() {
			other := auth.NewJWTTokenGenerator("another-secret-entirely-here", 2*time.Hour)
			token, err := other.Generate(1, "admin@example.com")
			Expect(err).NotTo(HaveOccurred())

			_, err = service.ValidateToken(token)
			Expect(err).To(Equal(internal.ErrInvalidToken))
		})

		It("should reject garbage", func() {
			_, err := service.ValidateToken("not-a-token")
			Expect(err).To(Equal(internal.ErrInvalidToken))
		})
	})

	Describe("GetPrincipal", func() {
		It("should return the user with its permission set", func() {
			u, err := service.GetPrincipal(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(u.Permissions).To(ConsistOf("ADMIN"))
			Expect(u.HasPermission("ADMIN")).To(BeTrue())
			Expect(u.HasPermission("CREATE_BOOKING")).To(BeFalse())
			Expect(u.HasAnyPermission("CREATE_BOOKING", "ADMIN")).To(BeTrue())
		})
	})
})
