package domain

import (
	"strings"
)

// BankID identifies a supported bank.
type BankID string

const (
	BankItau      BankID = "itau"
	BankSantander BankID = "santander"
	BankBradesco  BankID = "bradesco"
	BankBB        BankID = "bb"
	BankCaixa     BankID = "caixa"
	BankBTG       BankID = "btg"
	BankSafra     BankID = "safra"
)

// BankInfo is the static catalog entry for a bank.
type BankInfo struct {
	ID                    BankID `json:"id" yaml:"id"`
	Name                  string `json:"name" yaml:"name"`
	HasAdditionalProgram  bool   `json:"has_additional_program" yaml:"has_additional_program"`
	AdditionalProgramName string `json:"additional_program_name,omitempty" yaml:"additional_program_name,omitempty"`
}

// bankList is ordered alphabetically by display name.
var bankList = [...]BankInfo{
	{ID: BankBB, Name: "Banco do Brasil", HasAdditionalProgram: true, AdditionalProgramName: "Módulo BB"},
	{ID: BankSafra, Name: "Banco Safra"},
	{ID: BankBradesco, Name: "Bradesco", HasAdditionalProgram: true, AdditionalProgramName: "PRB"},
	{ID: BankBTG, Name: "BTG Pactual"},
	{ID: BankCaixa, Name: "Caixa Econômica Federal", HasAdditionalProgram: true, AdditionalProgramName: "PLR Social"},
	{ID: BankItau, Name: "Itaú Unibanco", HasAdditionalProgram: true, AdditionalProgramName: "PCR"},
	{ID: BankSantander, Name: "Santander", HasAdditionalProgram: true, AdditionalProgramName: "PPRS"},
}

var bankIndex = func() map[BankID]int {
	idx := make(map[BankID]int, len(bankList))
	for i, b := range bankList {
		idx[b.ID] = i
	}
	return idx
}()

// Banks returns a copy of the registry in display order.
func Banks() []BankInfo {
	out := make([]BankInfo, len(bankList))
	copy(out, bankList[:])
	return out
}

// BankIDs returns every supported identifier in registry order.
func BankIDs() []BankID {
	ids := make([]BankID, len(bankList))
	for i, b := range bankList {
		ids[i] = b.ID
	}
	return ids
}

// GetBankInfo looks up a bank by identifier.
func GetBankInfo(id BankID) (BankInfo, error) {
	i, ok := bankIndex[id]
	if !ok {
		return BankInfo{}, &UnknownBankError{ID: string(id)}
	}
	return bankList[i], nil
}

// ParseBankID normalizes free-form input ("Itau", " BB ") into a registered id.
func ParseBankID(s string) (BankID, error) {
	id := BankID(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := bankIndex[id]; !ok {
		return "", &UnknownBankError{ID: s}
	}
	return id, nil
}
