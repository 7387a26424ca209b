package oscillation_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestOscillation(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Oscillation Suite")
}
