package main

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/iotaledger/hive.go/ierrors"
	iotago "github.com/iotaledger/iota.go/v4"
	"github.com/iotaledger/iota.go/v4/hexutil"
	"github.com/iotaledger/registry-core/pkg/engine"
	"github.com/iotaledger/registry-core/pkg/model"
)

// Scenario is a sequence of slots with the transactions issued in them.
type Scenario struct {
	Accounts []ScenarioAccount `yaml:"accounts"`
	Slots    []ScenarioSlot    `yaml:"slots"`
}

type ScenarioAccount struct {
	Name    string `yaml:"name"`
	Balance uint64 `yaml:"balance"`
}

type ScenarioSlot struct {
	Slot uint32       `yaml:"slot"`
	Txs  []ScenarioTx `yaml:"txs"`
}

// ScenarioTx describes a single call. Which fields are used depends on the call.
type ScenarioTx struct {
	Actor       string  `yaml:"actor"`
	Call        string  `yaml:"call"`
	Fingerprint string  `yaml:"fingerprint,omitempty"`
	To          string  `yaml:"to,omitempty"`
	ID          uint32  `yaml:"id,omitempty"`
	ID2         uint32  `yaml:"id2,omitempty"`
	Owner       string  `yaml:"owner,omitempty"`
	Price       *uint64 `yaml:"price,omitempty"`
	MaxPrice    uint64  `yaml:"max_price,omitempty"`
}

func loadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ierrors.Wrapf(err, "failed to read scenario %s", path)
	}

	return parseScenario(data)
}

func parseScenario(data []byte) (*Scenario, error) {
	scenario := new(Scenario)
	if err := yaml.Unmarshal(data, scenario); err != nil {
		return nil, ierrors.Wrap(err, "failed to parse scenario")
	}

	names := make(map[string]struct{}, len(scenario.Accounts))
	for _, account := range scenario.Accounts {
		if account.Name == "" {
			return nil, ierrors.New("account without name")
		}
		if _, exists := names[account.Name]; exists {
			return nil, ierrors.Errorf("account %s defined twice", account.Name)
		}
		names[account.Name] = struct{}{}
	}

	for _, slot := range scenario.Slots {
		for i, tx := range slot.Txs {
			for _, name := range []string{tx.Actor, tx.To, tx.Owner} {
				if _, exists := names[name]; name != "" && !exists {
					return nil, ierrors.Errorf("slot %d tx %d: unknown account %s", slot.Slot, i, name)
				}
			}

			if tx.Actor == "" {
				return nil, ierrors.Errorf("slot %d tx %d: missing actor", slot.Slot, i)
			}
		}
	}

	return scenario, nil
}

// ToCall converts the transaction into an engine call. Account names are resolved with accountID.
func (tx *ScenarioTx) ToCall(accountID func(name string) iotago.AccountID) (engine.Call, error) {
	switch tx.Call {
	case "create_claim":
		fingerprint, err := tx.fingerprint()
		if err != nil {
			return nil, err
		}

		return &engine.CreateClaim{Fingerprint: fingerprint}, nil
	case "revoke_claim":
		fingerprint, err := tx.fingerprint()
		if err != nil {
			return nil, err
		}

		return &engine.RevokeClaim{Fingerprint: fingerprint}, nil
	case "transfer_claim":
		fingerprint, err := tx.fingerprint()
		if err != nil {
			return nil, err
		}

		return &engine.TransferClaim{Fingerprint: fingerprint, NewOwner: accountID(tx.To)}, nil
	case "create_creature":
		return &engine.CreateCreature{}, nil
	case "transfer_creature":
		return &engine.TransferCreature{To: accountID(tx.To), ID: model.CreatureID(tx.ID)}, nil
	case "breed_creature":
		return &engine.BreedCreature{Parent1: model.CreatureID(tx.ID), Parent2: model.CreatureID(tx.ID2)}, nil
	case "set_creature_price":
		call := &engine.SetCreaturePrice{ID: model.CreatureID(tx.ID)}
		if tx.Price != nil {
			price := iotago.BaseToken(*tx.Price)
			call.Price = &price
		}

		return call, nil
	case "buy_creature":
		return &engine.BuyCreature{Owner: accountID(tx.Owner), ID: model.CreatureID(tx.ID), MaxPrice: iotago.BaseToken(tx.MaxPrice)}, nil
	default:
		return nil, ierrors.Errorf("unknown call %q", tx.Call)
	}
}

// fingerprint returns the 0x prefixed hex fingerprint decoded and any other fingerprint as raw bytes.
func (tx *ScenarioTx) fingerprint() (model.Fingerprint, error) {
	if strings.HasPrefix(tx.Fingerprint, "0x") {
		decoded, err := hexutil.DecodeHex(tx.Fingerprint)
		if err != nil {
			return nil, ierrors.Wrapf(err, "invalid fingerprint %s", tx.Fingerprint)
		}

		return decoded, nil
	}

	return model.Fingerprint(tx.Fingerprint), nil
}
