package email_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/timetracker/internal/email"
)

func TestEmail(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Email Suite")
}

var _ = Describe("BuildMagicLinkEmail", func() {
	It("carries the property name, code and link in both bodies", func() {
		msg := email.BuildMagicLinkEmail("manager@sunriseinn.test", "Sunrise Inn", "ABC123", "https://app.example.com/verify?token=abc")

		Expect(msg.To).To(Equal("manager@sunriseinn.test"))
		Expect(msg.Subject).To(ContainSubstring("Sunrise Inn"))
		Expect(msg.HTML).To(ContainSubstring("ABC123"))
		Expect(msg.HTML).To(ContainSubstring("https://app.example.com/verify?token=abc"))
		Expect(msg.Text).To(ContainSubstring("https://app.example.com/verify?token=abc"))
		Expect(msg.Text).To(ContainSubstring("expires in 15 minutes"))
	})

	It("escapes HTML in property fields", func() {
		msg := email.BuildMagicLinkEmail("x@y.test", `<script>alert("x")</script>`, "ABC123", "https://app.example.com")

		Expect(msg.HTML).NotTo(ContainSubstring("<script>"))
		Expect(msg.HTML).To(ContainSubstring("&lt;script&gt;"))
	})

	It("falls back to the code when the name is empty", func() {
		msg := email.BuildMagicLinkEmail("x@y.test", "", "ABC123", "https://app.example.com")
		Expect(msg.Subject).To(ContainSubstring("ABC123"))
	})
})
