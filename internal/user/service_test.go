package user_test

import (
	"log/slog"
	"net/http"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/horvathbencetibor/booking-system-be/internal"
	"github.com/horvathbencetibor/booking-system-be/internal/auth"
	"github.com/horvathbencetibor/booking-system-be/internal/user"
)

func TestUserService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Service Suite")
}

type mockRepository struct {
	users   map[int64]*user.User
	byEmail map[string]int64
	nextID  int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		users:   make(map[int64]*user.User),
		byEmail: make(map[string]int64),
		nextID:  1,
	}
}

func (m *mockRepository) Create(u *user.User) error {
	if _, taken := m.byEmail[u.Email]; taken {
		return gorm.ErrDuplicatedKey
	}
	u.ID = m.nextID
	m.nextID++
	m.users[u.ID] = u
	m.byEmail[u.Email] = u.ID
	return nil
}

func (m *mockRepository) GetByID(id int64) (*user.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (m *mockRepository) GetAll() ([]*user.User, error) {
	out := make([]*user.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *mockRepository) Update(u *user.User) error {
	if _, ok := m.users[u.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.users[u.ID] = u
	return nil
}

func (m *mockRepository) Delete(id int64) error {
	u, ok := m.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.byEmail, u.Email)
	delete(m.users, id)
	return nil
}

var _ = Describe("User Service", func() {
	var (
		repo    *mockRepository
		service *user.Service
	)

	BeforeEach(func() {
		repo = newMockRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = user.NewService(repo, 4, logger)
	})

	Describe("Register", func() {
		It("should store a bcrypt hash, never the plaintext", func() {
			u, err := service.Register(user.CreateUserDTO{Name: "User", Email: "user@example.com", Password: "secret"})
			Expect(err).NotTo(HaveOccurred())
			Expect(u.PasswordHash).NotTo(Equal("secret"))
			Expect(auth.VerifyPassword(u.PasswordHash, "secret")).To(Succeed())
		})

		It("should map a duplicate email to the email conflict", func() {
			_, err := service.Register(user.CreateUserDTO{Name: "A", Email: "user@example.com", Password: "x"})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Register(user.CreateUserDTO{Name: "B", Email: "user@example.com", Password: "y"})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeEmailExists))
			Expect(appErr.StatusCode).To(Equal(http.StatusConflict))
		})

		It("should reject missing fields", func() {
			_, err := service.Register(user.CreateUserDTO{Email: "user@example.com"})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("Update", func() {
		var id int64

		BeforeEach(func() {
			u, err := service.Register(user.CreateUserDTO{Name: "User", Email: "user@example.com", Password: "old"})
			Expect(err).NotTo(HaveOccurred())
			id = u.ID
		})

		It("should rotate the hash only when a password is supplied", func() {
			before, err := service.GetByID(id)
			Expect(err).NotTo(HaveOccurred())
			oldHash := before.PasswordHash

			Expect(service.Update(id, user.UpdateUserDTO{Name: "Renamed"})).To(Succeed())
			after, err := service.GetByID(id)
			Expect(err).NotTo(HaveOccurred())
			Expect(after.Name).To(Equal("Renamed"))
			Expect(after.PasswordHash).To(Equal(oldHash))

			Expect(service.Update(id, user.UpdateUserDTO{Password: "new"})).To(Succeed())
			after, err = service.GetByID(id)
			Expect(err).NotTo(HaveOccurred())
			Expect(auth.VerifyPassword(after.PasswordHash, "new")).To(Succeed())
		})

		It("should return not found for an unknown user", func() {
			err := service.Update(999, user.UpdateUserDTO{Name: "Ghost"})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeUserNotFound))
		})
	})

	Describe("Delete", func() {
		It("should return not found for an unknown user", func() {
			err := service.Delete(999)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(http.StatusNotFound))
		})
	})
})
