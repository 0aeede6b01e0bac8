package kepler_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestKepler(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Kepler Propagation Suite")
}
