package database

import (
	"context"
	"errors"
	"fmt"

	"topreparateurs/internal/adapter/persistence/repository"
	appconfig "topreparateurs/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// TableCreator is the part of *dynamodb.Client used for provisioning.
type TableCreator interface {
	CreateTable(ctx context.Context, in *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
}

var _ TableCreator = (*dynamodb.Client)(nil)

// TableResult reports what EnsureTables did for one table.
type TableResult struct {
	Name    string
	Created bool
}

func stringAttr(name string) types.AttributeDefinition {
	return types.AttributeDefinition{AttributeName: aws.String(name), AttributeType: types.ScalarAttributeTypeS}
}

func hashKey(name string) types.KeySchemaElement {
	return types.KeySchemaElement{AttributeName: aws.String(name), KeyType: types.KeyTypeHash}
}

func rangeKey(name string) types.KeySchemaElement {
	return types.KeySchemaElement{AttributeName: aws.String(name), KeyType: types.KeyTypeRange}
}

func index(name string, keys ...types.KeySchemaElement) types.GlobalSecondaryIndex {
	return types.GlobalSecondaryIndex{
		IndexName:  aws.String(name),
		KeySchema:  keys,
		Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
	}
}

// TableDefinitions returns the CreateTable inputs for every table the service uses.
func TableDefinitions(t appconfig.TablesConfig) []*dynamodb.CreateTableInput {
	def := func(name string, attrs []types.AttributeDefinition, keys []types.KeySchemaElement, gsis ...types.GlobalSecondaryIndex) *dynamodb.CreateTableInput {
		in := &dynamodb.CreateTableInput{
			TableName:            aws.String(name),
			AttributeDefinitions: attrs,
			KeySchema:            keys,
			BillingMode:          types.BillingModePayPerRequest,
		}
		if len(gsis) > 0 {
			in.GlobalSecondaryIndexes = gsis
		}
		return in
	}

	return []*dynamodb.CreateTableInput{
		def(t.Quotes,
			[]types.AttributeDefinition{stringAttr("id"), stringAttr("client_id"), stringAttr("repairer_id")},
			[]types.KeySchemaElement{hashKey("id")},
			index(repository.QuotesClientIDIndex, hashKey("client_id")),
			index(repository.QuotesRepairerIDIndex, hashKey("repairer_id")),
		),
		def(t.Payments,
			[]types.AttributeDefinition{stringAttr("id"), stringAttr("quote_id"), stringAttr("provider_payment_id")},
			[]types.KeySchemaElement{hashKey("id")},
			index(repository.PaymentsQuoteIDIndex, hashKey("quote_id")),
			index(repository.PaymentsProviderIDIndex, hashKey("provider_payment_id")),
		),
		def(t.Holds,
			[]types.AttributeDefinition{stringAttr("id"), stringAttr("payment_id"), stringAttr("status"), stringAttr("release_at")},
			[]types.KeySchemaElement{hashKey("id")},
			index(repository.HoldsPaymentIDIndex, hashKey("payment_id")),
			index(repository.HoldsStatusReleaseAtIndex, hashKey("status"), rangeKey("release_at")),
		),
		def(t.Timeline,
			[]types.AttributeDefinition{stringAttr("quote_id"), stringAttr("sort_key")},
			[]types.KeySchemaElement{hashKey("quote_id"), rangeKey("sort_key")},
		),
		def(t.Disputes,
			[]types.AttributeDefinition{stringAttr("id"), stringAttr("quote_id")},
			[]types.KeySchemaElement{hashKey("id")},
			index(repository.DisputesQuoteIDIndex, hashKey("quote_id")),
		),
	}
}

// EnsureTables creates the missing tables. Tables that already exist are left untouched.
func EnsureTables(ctx context.Context, api TableCreator, t appconfig.TablesConfig) ([]TableResult, error) {
	defs := TableDefinitions(t)
	out := make([]TableResult, 0, len(defs))
	for _, in := range defs {
		name := aws.ToString(in.TableName)
		_, err := api.CreateTable(ctx, in)
		var inUse *types.ResourceInUseException
		switch {
		case err == nil:
			out = append(out, TableResult{Name: name, Created: true})
		case errors.As(err, &inUse):
			out = append(out, TableResult{Name: name})
		default:
			return out, fmt.Errorf("create table %s: %w", name, err)
		}
	}
	return out, nil
}
