package e2e

import (
	"github.com/jmptrader/robotest-web/e2e/features"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = RoboDescribe("features", func() {
	It("should pass the bundled scenarios", func() {
		suite := &features.Suite{Runtime: rt}
		Expect(suite.Run(features.Options{Format: "progress", Concurrency: 2})).To(Equal(0))
	})
})
