package config_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mipssim/config"
	"github.com/sarchlab/mipssim/insts"
	"github.com/sarchlab/mipssim/timing/core"
)

var _ = Describe("SimConfig", func() {
	Describe("DefaultConfig", func() {
		It("should run from 0 without a budget, fully traced", func() {
			cfg := config.DefaultConfig()
			Expect(cfg.EntryPC).To(BeZero())
			Expect(cfg.MaxCycles).To(BeZero())
			Expect(cfg.Mode()).To(Equal(core.Mode(0)))
			Expect(cfg.WireALUZero).To(BeFalse())
			Expect(cfg.Validate()).To(Succeed())
		})
	})

	Describe("Validate", func() {
		It("should reject a misaligned entry PC", func() {
			cfg := config.DefaultConfig()
			cfg.EntryPC = 0x102
			Expect(cfg.Validate()).To(MatchError(ContainSubstring("word aligned")))
		})
	})

	Describe("Mode", func() {
		It("should round-trip through SetMode", func() {
			cfg := config.DefaultConfig()
			cfg.SetMode(core.ModePhaseRestricted | core.ModeQuietExecute)

			Expect(cfg.PhaseRestricted).To(BeTrue())
			Expect(cfg.QuietExecute).To(BeTrue())
			Expect(cfg.QuietCycle).To(BeFalse())
			Expect(cfg.Mode()).To(Equal(core.ModePhaseRestricted | core.ModeQuietExecute))
		})
	})

	Describe("LoadConfig and SaveConfig", func() {
		var tempDir string

		BeforeEach(func() {
			var err error
			tempDir, err = os.MkdirTemp("", "config-test")
			Expect(err).NotTo(HaveOccurred())
		})

		AfterEach(func() {
			_ = os.RemoveAll(tempDir)
		})

		It("should save and load the same settings", func() {
			cfg := config.DefaultConfig()
			cfg.EntryPC = 0x400000
			cfg.MaxCycles = 99
			cfg.QuietDecode = true
			cfg.WireALUZero = true

			path := filepath.Join(tempDir, "sim.json")
			Expect(cfg.SaveConfig(path)).To(Succeed())

			loaded, err := config.LoadConfig(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded).To(Equal(cfg))
		})

		It("should keep defaults for missing fields", func() {
			path := filepath.Join(tempDir, "partial.json")
			Expect(os.WriteFile(path, []byte(`{"max_cycles": 7}`), 0644)).To(Succeed())

			loaded, err := config.LoadConfig(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.MaxCycles).To(Equal(uint64(7)))
			Expect(loaded.EntryPC).To(BeZero())
		})

		It("should report a missing file", func() {
			_, err := config.LoadConfig(filepath.Join(tempDir, "missing.json"))
			Expect(err).To(MatchError(ContainSubstring("failed to read config file")))
		})

		It("should report malformed JSON", func() {
			path := filepath.Join(tempDir, "bad.json")
			Expect(os.WriteFile(path, []byte(`{"max_cycles":`), 0644)).To(Succeed())

			_, err := config.LoadConfig(path)
			Expect(err).To(MatchError(ContainSubstring("failed to parse config")))
		})
	})

	Describe("Clone", func() {
		It("should return an independent copy", func() {
			cfg := config.DefaultConfig()
			clone := cfg.Clone()
			clone.MaxCycles = 5

			Expect(cfg.MaxCycles).To(BeZero())
			Expect(clone).NotTo(BeIdenticalTo(cfg))
		})
	})

	Describe("CoreOptions", func() {
		It("should configure the zero wiring and mode of a core", func() {
			cfg := config.DefaultConfig()
			cfg.WireALUZero = true
			cfg.QuietCycle = true

			c := core.NewCore(cfg.CoreOptions()...)
			Expect(c.Mode()).To(Equal(core.ModeQuietCycle))

			c.RegFile().WriteReg(1, 3)
			c.RegFile().WriteReg(2, 3)
			Expect(c.LoadProgram(0, []uint32{
				insts.BEQ(1, 2, 1),
				insts.ADDI(3, 0, 1),
				insts.ADDI(4, 0, 1),
			})).To(Succeed())

			_, err := c.Run(0)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.RegFile().ReadReg(3)).To(BeZero())
			Expect(c.RegFile().ReadReg(4)).To(Equal(uint32(1)))
		})
	})
})
