package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/timetracker/internal/transport/middleware"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

func TestMiddleware(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Transport Middleware Suite")
}

var _ = Describe("RequestID", func() {
	It("reuses the id assigned by chi upstream", func() {
		var seen string
		handler := chiMiddleware.RequestID(middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = chiMiddleware.GetReqID(r.Context())
		})))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		Expect(seen).NotTo(BeEmpty())
		Expect(rec.Header().Get("X-Request-Id")).To(Equal(seen))
	})

	It("mints an id when mounted without chi", func() {
		handler := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		Expect(rec.Header().Get("X-Request-Id")).NotTo(BeEmpty())
	})
})
