package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/iota.go/v4/hexutil"
)

const (
	FlagScenario             = "scenario"
	FlagGenesisSeed          = "genesis-seed"
	FlagMaxFingerprintLength = "max-fingerprint-length"
	FlagCreatureReserve      = "creature-reserve"
	FlagExistentialDeposit   = "existential-deposit"
	FlagVerbose              = "verbose"
)

// Parameters contains the configuration of a replay run.
type Parameters struct {
	// ScenarioPath is the path of the YAML scenario to replay.
	ScenarioPath string
	// GenesisSeed is the seed the per-slot randomness is derived from.
	GenesisSeed []byte
	// MaxFingerprintLength is the maximum length of a claimable fingerprint.
	MaxFingerprintLength int
	// CreatureReserve is the amount reserved per created creature.
	CreatureReserve uint64
	// ExistentialDeposit is the minimum total balance of an account.
	ExistentialDeposit uint64
	// Verbose enables trace logging of every executed call.
	Verbose bool
}

func parseParameters(args []string) (*Parameters, error) {
	fs := flag.NewFlagSet("registry-replay", flag.ContinueOnError)
	scenarioFlag := fs.String(FlagScenario, "", "the path of the YAML scenario to replay")
	genesisSeedFlag := fs.String(FlagGenesisSeed, "0x00", "the hex encoded seed the slot randomness is derived from")
	maxFingerprintLengthFlag := fs.Int(FlagMaxFingerprintLength, 256, "the maximum length of a claimable fingerprint")
	creatureReserveFlag := fs.Uint64(FlagCreatureReserve, 100, "the amount reserved per created creature")
	existentialDepositFlag := fs.Uint64(FlagExistentialDeposit, 1, "the minimum total balance of an account")
	verboseFlag := fs.Bool(FlagVerbose, false, "log every executed call")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Usage of registry-replay:\n")
		fs.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nexample: registry-replay --%s scenario.yaml --%s 0x0102\n", FlagScenario, FlagGenesisSeed)
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if *scenarioFlag == "" {
		return nil, ierrors.Errorf("'%s' not specified", FlagScenario)
	}

	genesisSeed, err := hexutil.DecodeHex(*genesisSeedFlag)
	if err != nil {
		return nil, ierrors.Wrapf(err, "invalid '%s'", FlagGenesisSeed)
	}

	if *maxFingerprintLengthFlag < 0 {
		return nil, ierrors.Errorf("'%s' must not be negative", FlagMaxFingerprintLength)
	}

	return &Parameters{
		ScenarioPath:         *scenarioFlag,
		GenesisSeed:          genesisSeed,
		MaxFingerprintLength: *maxFingerprintLengthFlag,
		CreatureReserve:      *creatureReserveFlag,
		ExistentialDeposit:   *existentialDepositFlag,
		Verbose:              *verboseFlag,
	}, nil
}
