package util

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("SplitAndTrimString", func() {
	It("should return nil for empty string", func() {
		result := SplitAndTrimString("", ";")
		Expect(result).To(BeNil())
	})

	It("should split string by separator and trim spaces", func() {
		result := SplitAndTrimString("A=1; B=2 ;C='3,4'", ";")
		Expect(result).To(Equal([]string{"A=1", "B=2", "C='3,4'"}))
	})

	It("should handle single item", func() {
		result := SplitAndTrimString("single", ";")
		Expect(result).To(Equal([]string{"single"}))
	})

	It("should drop empty items", func() {
		result := SplitAndTrimString("one;; ;three", ";")
		Expect(result).To(Equal([]string{"one", "three"}))
	})

	It("should return an empty slice for separators only", func() {
		result := SplitAndTrimString(";;;", ";")
		Expect(result).To(BeEmpty())
	})

	It("should handle multiline separator", func() {
		result := SplitAndTrimString("one\ntwo\nthree", "\n")
		Expect(result).To(Equal([]string{"one", "two", "three"}))
	})
})
