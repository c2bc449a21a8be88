package auth_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/horvathbencetibor/booking-system-be/internal/auth"
)

var _ = Describe("Auth Handler", func() {
	var (
		repo    *mockRepository
		service *auth.Service
		handler *auth.Handler
	)

	BeforeEach(func() {
		repo = newMockRepository()
		repo.addUser(1, "Admin", "admin@example.com", "admin", "ADMIN")
		service = auth.NewService(repo, auth.NewJWTTokenGenerator("test-secret-of-decent-length", 2*time.Hour))
		handler = auth.NewHandler(service)
	})

	login := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()
		handler.Login(rec, req)
		return rec
	}

	Describe("Login", func() {
		It("should return a token for valid credentials", func() {
			rec := login(`{"email":"admin@example.com","password":"admin"}`)
			Expect(rec.Code).To(Equal(http.StatusOK))

			var result auth.LoginResult
			Expect(json.Unmarshal(rec.Body.Bytes(), &result)).To(Succeed())
			Expect(result.Token).NotTo(BeEmpty())
			Expect(result.User.Email).To(Equal("admin@example.com"))
		})

		It("should return 401 for a wrong password", func() {
			rec := login(`{"email":"admin@example.com","password":"wrong"}`)
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			Expect(rec.Body.String()).To(ContainSubstring("INVALID_CREDENTIALS"))
		})

		It("should return 400 for a missing password", func() {
			rec := login(`{"email":"admin@example.com"}`)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("should return 400 for a malformed body", func() {
			rec := login(`{`)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("CheckAuth", func() {
		It("should echo the claims for a valid token", func() {
			result, err := service.Authenticate(auth.LoginDTO{Email: "admin@example.com", Password: "admin"})
			Expect(err).NotTo(HaveOccurred())

			req := httptest.NewRequest(http.MethodGet, "/checkauth", nil)
			req.Header.Set("Authorization", "Bearer "+result.Token)
			rec := httptest.NewRecorder()
			handler.CheckAuth(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(ContainSubstring("Authenticated"))
			Expect(rec.Body.String()).To(ContainSubstring("admin@example.com"))
		})

		It("should return 401 without a token", func() {
			req := httptest.NewRequest(http.MethodGet, "/checkauth", nil)
			rec := httptest.NewRecorder()
			handler.CheckAuth(rec, req)
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		})
	})

	Describe("Middleware", func() {
		var protected http.Handler

		BeforeEach(func() {
			protected = handler.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				u, ok := auth.UserFromContext(r.Context())
				Expect(ok).To(BeTrue())
				Expect(u.Permissions).To(ConsistOf("ADMIN"))
				w.WriteHeader(http.StatusOK)
			}))
		})

		It("should attach the principal for a valid token", func() {
			result, err := service.Authenticate(auth.LoginDTO{Email: "admin@example.com", Password: "admin"})
			Expect(err).NotTo(HaveOccurred())

			req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
			req.Header.Set("Authorization", "Bearer "+result.Token)
			rec := httptest.NewRecorder()
			protected.ServeHTTP(rec, req)
			Expect(rec.Code).To(Equal(http.StatusOK))
		})

		It("should return 401 for a missing token", func() {
			req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
			rec := httptest.NewRecorder()
			protected.ServeHTTP(rec, req)
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		})

		It("should return 401 when the token's user no longer exists", func() {
			gen := auth.NewJWTTokenGenerator("test-secret-of-decent-length", 2*time.Hour)
			token, err := gen.Generate(999, "ghost@example.com")
			Expect(err).NotTo(HaveOccurred())

			req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()
			protected.ServeHTTP(rec, req)
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		})

		It("should return 401 for an expired token", func() {
			gen := auth.NewJWTTokenGenerator("test-secret-of-decent-length", -time.Minute)
			token, err := gen.Generate(1, "admin@example.com")
			Expect(err).NotTo(HaveOccurred())

			req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()
			protected.ServeHTTP(rec, req)
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			Expect(rec.Body.String()).To(ContainSubstring("TOKEN_EXPIRED"))
		})
	})
})
