package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type item = map[string]types.AttributeValue

// fakeDynamo evaluates the handful of expressions the repositories issue.
type fakeDynamo struct {
	mu       sync.Mutex
	tables   map[string]map[string]item
	pageSize int
	queries  int
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{tables: map[string]map[string]item{}}
}

func str(av types.AttributeValue) string {
	switch v := av.(type) {
	case *types.AttributeValueMemberS:
		return v.Value
	case *types.AttributeValueMemberN:
		return v.Value
	}
	return ""
}

func primaryKey(it item) string {
	if sk, ok := it["sort_key"]; ok {
		return str(it["quote_id"]) + "|" + str(sk)
	}
	return str(it["id"])
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	table := *in.TableName
	if f.tables[table] == nil {
		f.tables[table] = map[string]item{}
	}
	key := primaryKey(in.Item)
	existing, exists := f.tables[table][key]
	failed := &types.ConditionalCheckFailedException{Message: aws.String("condition failed")}
	if in.ConditionExpression != nil {
		switch cond := *in.ConditionExpression; {
		case strings.HasPrefix(cond, "attribute_not_exists"):
			if exists {
				return nil, failed
			}
		case strings.HasPrefix(cond, "attribute_exists"):
			if !exists || str(existing["version"]) != str(in.ExpressionAttributeValues[":expected"]) {
				return nil, failed
			}
		default:
			return nil, fmt.Errorf("fake: unsupported condition %q", cond)
		}
	}
	f.tables[table][key] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &dynamodb.GetItemOutput{Item: f.tables[*in.TableName][str(in.Key["id"])]}, nil
}

func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries++

	type clause struct{ attr, op, value string }
	var clauses []clause
	for _, part := range strings.Split(*in.KeyConditionExpression, " AND ") {
		fields := strings.Fields(part)
		if len(fields) != 3 {
			return nil, fmt.Errorf("fake: unsupported key condition %q", part)
		}
		clauses = append(clauses, clause{
			attr:  in.ExpressionAttributeNames[fields[0]],
			op:    fields[1],
			value: str(in.ExpressionAttributeValues[fields[2]]),
		})
	}

	var matched []item
	for _, it := range f.tables[*in.TableName] {
		ok := true
		for _, c := range clauses {
			got := str(it[c.attr])
			switch c.op {
			case "=":
				ok = ok && got == c.value
			case "<=":
				ok = ok && got <= c.value
			}
		}
		if ok {
			matched = append(matched, it)
		}
	}

	rangeAttr := "sort_key"
	if len(clauses) > 1 {
		rangeAttr = clauses[1].attr
	}
	sort.Slice(matched, func(i, j int) bool {
		ri, rj := str(matched[i][rangeAttr]), str(matched[j][rangeAttr])
		if ri != rj {
			return ri < rj
		}
		return primaryKey(matched[i]) < primaryKey(matched[j])
	})

	start := 0
	if in.ExclusiveStartKey != nil {
		last := primaryKey(in.ExclusiveStartKey)
		for i, it := range matched {
			if primaryKey(it) == last {
				start = i + 1
			}
		}
	}
	matched = matched[start:]

	size := f.pageSize
	if in.Limit != nil && (size == 0 || int(*in.Limit) < size) {
		size = int(*in.Limit)
	}
	out := &dynamodb.QueryOutput{}
	if size > 0 && len(matched) > size {
		out.LastEvaluatedKey = matched[size-1]
		matched = matched[:size]
	}
	out.Items = matched
	return out, nil
}
