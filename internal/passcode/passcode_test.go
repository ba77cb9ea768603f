package passcode_test

import (
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/timetracker/internal/passcode"
)

func TestPasscode(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Passcode Suite")
}

var _ = Describe("Passcode codec", func() {
	Describe("Hash", func() {
		It("should verify a passcode against its own hash", func() {
			encoded, err := passcode.Hash("1234")
			Expect(err).NotTo(HaveOccurred())
			Expect(passcode.Verify("1234", encoded)).To(BeTrue())
		})

		It("should produce a different encoding on every call", func() {
			first, err := passcode.Hash("1234")
			Expect(err).NotTo(HaveOccurred())
			second, err := passcode.Hash("1234")
			Expect(err).NotTo(HaveOccurred())

			Expect(first).NotTo(Equal(second))
			Expect(passcode.Verify("1234", first)).To(BeTrue())
			Expect(passcode.Verify("1234", second)).To(BeTrue())
		})

		It("should encode as salt:digest", func() {
			encoded, err := passcode.Hash("0000")
			Expect(err).NotTo(HaveOccurred())
			Expect(strings.Count(encoded, ":")).To(Equal(1))
			Expect(passcode.IsLegacy(encoded)).To(BeFalse())
		})

		It("should reject the wrong passcode", func() {
			encoded, err := passcode.Hash("1234")
			Expect(err).NotTo(HaveOccurred())
			Expect(passcode.Verify("4321", encoded)).To(BeFalse())
		})
	})

	Describe("Verify with legacy encodings", func() {
		It("should accept plaintext records for migration", func() {
			Expect(passcode.IsLegacy("1234")).To(BeTrue())
			Expect(passcode.Verify("1234", "1234")).To(BeTrue())
			Expect(passcode.Verify("9999", "1234")).To(BeFalse())
		})
	})

	Describe("Verify with malformed encodings", func() {
		It("should verify false instead of failing", func() {
			Expect(passcode.Verify("1234", ":")).To(BeFalse())
			Expect(passcode.Verify("1234", "salt:")).To(BeFalse())
			Expect(passcode.Verify("1234", ":digest")).To(BeFalse())
			Expect(passcode.Verify("1234", "salt:not-hex")).To(BeFalse())
			Expect(passcode.Verify("1234", "salt:abcd")).To(BeFalse())
		})
	})

	Describe("ValidatePasscode", func() {
		It("should accept exactly four decimal digits", func() {
			Expect(passcode.ValidatePasscode("1234")).To(BeTrue())
			Expect(passcode.ValidatePasscode("0000")).To(BeTrue())
		})

		It("should reject everything else", func() {
			Expect(passcode.ValidatePasscode("123")).To(BeFalse())
			Expect(passcode.ValidatePasscode("12345")).To(BeFalse())
			Expect(passcode.ValidatePasscode("12a4")).To(BeFalse())
			Expect(passcode.ValidatePasscode("")).To(BeFalse())
			Expect(passcode.ValidatePasscode(" 1234")).To(BeFalse())
		})
	})
})
