package config

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Load", func() {
	var dir string

	writeEnv := func(content string) string {
		path := filepath.Join(dir, "test.env")
		Expect(os.WriteFile(path, []byte(content), 0o644)).To(Succeed())

		return path
	}

	setenv := func(name, value string) {
		Expect(os.Setenv(name, value)).To(Succeed())
		DeferCleanup(os.Unsetenv, name)
	}

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	It("should read settings from an env file", func() {
		path := writeEnv(`TSUHO_SPECTRE="spectre -64"
TSUHO_NETLIST=ps16x8.cir
TSUHO_PERIOD=4e-9
TSUHO_NUM_STEPS=5
TSUHO_APS=false
TSUHO_MONITOR_PORT=32776
`)

		c, err := Load(path)

		Expect(err).NotTo(HaveOccurred())
		Expect(c.SpectreCommand).To(Equal([]string{"spectre", "-64"}))
		Expect(c.Netlist).To(Equal("ps16x8.cir"))
		Expect(c.Period).To(Equal(4e-9))
		Expect(c.NumSteps).To(Equal(5))
		Expect(c.APS).To(BeFalse())
		Expect(c.MonitorPort).To(Equal(32776))
		Expect(c.ThresholdRatio).To(Equal(1.05))
	})

	It("should prefer the environment over the file", func() {
		path := writeEnv("TSUHO_MAX_ITERATIONS=4\n")
		setenv("TSUHO_MAX_ITERATIONS", "7")

		c, err := Load(path)

		Expect(err).NotTo(HaveOccurred())
		Expect(c.MaxIterations).To(Equal(7))
	})

	It("should name the variable that cannot be parsed", func() {
		path := writeEnv("TSUHO_TARGET_PRECISION=tiny\n")

		_, err := Load(path)

		Expect(err).To(MatchError(ContainSubstring("TSUHO_TARGET_PRECISION")))
	})

	It("should reject an empty command", func() {
		path := writeEnv("TSUHO_SPECTRE=\"  \"\n")

		_, err := Load(path)

		Expect(err).To(MatchError(ContainSubstring("empty command")))
	})

	It("should fail on a missing explicit file", func() {
		_, err := Load(filepath.Join(dir, "missing.env"))

		Expect(err).To(HaveOccurred())
	})

	It("should use the defaults without a default file", func() {
		wd, err := os.Getwd()
		Expect(err).NotTo(HaveOccurred())
		Expect(os.Chdir(dir)).To(Succeed())
		DeferCleanup(os.Chdir, wd)

		c, err := Load()

		Expect(err).NotTo(HaveOccurred())
		Expect(c).To(Equal(DefaultConfig()))
	})
})

var _ = Describe("Validate", func() {
	It("should accept the defaults", func() {
		Expect(DefaultConfig().Validate()).To(Succeed())
	})

	DescribeTable("should reject settings a run cannot use",
		func(change func(c *Config), message string) {
			c := DefaultConfig()
			change(&c)

			Expect(c.Validate()).To(MatchError(ContainSubstring(message)))
		},
		Entry("single step", func(c *Config) { c.NumSteps = 1 },
			"at least 2 steps"),
		Entry("ratio of 1", func(c *Config) { c.ThresholdRatio = 1 },
			"threshold ratio"),
		Entry("zero period", func(c *Config) { c.Period = 0 },
			"period"),
		Entry("no iterations", func(c *Config) { c.MaxIterations = 0 },
			"max iterations"),
		Entry("negative precision", func(c *Config) { c.TargetPrecision = -1 },
			"target precision"),
		Entry("negative slew", func(c *Config) { c.PinSlew = -1e-12 },
			"slews"),
		Entry("no netlist", func(c *Config) { c.Netlist = "" },
			"NETLIST"),
		Entry("port out of range", func(c *Config) { c.MonitorPort = 70000 },
			"monitor port"),
	)

	It("should reject a step count below two read from a file", func() {
		path := filepath.Join(GinkgoT().TempDir(), "ok.env")
		Expect(os.WriteFile(path, []byte("TSUHO_NUM_STEPS=1\n"), 0o644)).
			To(Succeed())

		c, err := Load(path)

		Expect(err).NotTo(HaveOccurred())
		Expect(c.Validate()).To(MatchError(ContainSubstring("got 1")))
	})
})
