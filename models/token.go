package models

import "fmt"

type TokenMetadata struct {
	Address  string `dynamodbav:"address" json:"address"`
	Symbol   string `dynamodbav:"symbol" json:"symbol"`
	Decimals int    `dynamodbav:"decimals" json:"decimals"`

	PK string `dynamodbav:"PK" json:"-"`
	SK string `dynamodbav:"SK" json:"-"`
}

// Key handlers
func TokenPK(address string) string {
	return fmt.Sprintf("TOKEN#%s", address)
}
