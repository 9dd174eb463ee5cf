package repository

import (
	"context"

	"paintbuddy/internal/domain/entities"
	"paintbuddy/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	emailIndex             = "email-index"
	verificationTokenIndex = "verification_token-index"
	resetTokenIndex        = "reset_token-index"
)

type userItem struct {
	ID                string `dynamodbav:"id"`
	Email             string `dynamodbav:"email"`
	Name              string `dynamodbav:"name"`
	PasswordHash      string `dynamodbav:"password_hash,omitempty"`
	Role              string `dynamodbav:"role"`
	EmailVerified     bool   `dynamodbav:"email_verified"`
	VerificationToken string `dynamodbav:"verification_token,omitempty"`
	ResetToken        string `dynamodbav:"reset_token,omitempty"`
	CreatedAt         string `dynamodbav:"created_at"`
}

// UserDynamoRepository persists accounts in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI email-index: PK email (string)
//   - GSI verification_token-index: PK verification_token (string)
//   - GSI reset_token-index: PK reset_token (string)
type UserDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IUserRepository = (*UserDynamoRepository)(nil)

func NewUserDynamoRepository(ddb *dynamodb.Client, tableName string) *UserDynamoRepository {
	return &UserDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *UserDynamoRepository) Create(ctx context.Context, user entities.User) (entities.User, error) {
	av, err := attributevalue.MarshalMap(toUserItem(user))
	if err != nil {
		return entities.User{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.User{}, err
	}
	return user, nil
}

func (r *UserDynamoRepository) GetByID(ctx context.Context, id string) (entities.User, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.User{}, err
	}
	if len(out.Item) == 0 {
		return entities.User{}, nil
	}

	var it userItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.User{}, err
	}
	return fromUserItem(it), nil
}

func (r *UserDynamoRepository) GetByEmail(ctx context.Context, email string) (entities.User, error) {
	return r.queryOne(ctx, emailIndex, "email", email)
}

func (r *UserDynamoRepository) GetByVerificationToken(ctx context.Context, token string) (entities.User, error) {
	return r.queryOne(ctx, verificationTokenIndex, "verification_token", token)
}

func (r *UserDynamoRepository) GetByResetToken(ctx context.Context, token string) (entities.User, error) {
	return r.queryOne(ctx, resetTokenIndex, "reset_token", token)
}

// MarkVerified flips the verified flag and consumes the verification token
// in one update, so a verification link cannot be replayed.
func (r *UserDynamoRepository) MarkVerified(ctx context.Context, id string) (entities.User, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		UpdateExpression:    aws.String("SET #email_verified = :verified REMOVE #verification_token"),
		ConditionExpression: aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id":                 "id",
			"#email_verified":     "email_verified",
			"#verification_token": "verification_token",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":verified": &types.AttributeValueMemberBOOL{Value: true},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		return entities.User{}, err
	}

	var it userItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.User{}, err
	}
	return fromUserItem(it), nil
}

// SetResetToken stores a fresh reset token; a second request overwrites the
// previous one so only the latest emailed link works.
func (r *UserDynamoRepository) SetResetToken(ctx context.Context, id, token string) error {
	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		UpdateExpression:    aws.String("SET #reset_token = :token"),
		ConditionExpression: aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id":          "id",
			"#reset_token": "reset_token",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":token": &types.AttributeValueMemberS{Value: token},
		},
	})
	return err
}

// UpdatePassword replaces the password hash and consumes the reset token in
// one update, so a reset link cannot be replayed.
func (r *UserDynamoRepository) UpdatePassword(ctx context.Context, id, passwordHash string) (entities.User, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		UpdateExpression:    aws.String("SET #password_hash = :hash REMOVE #reset_token"),
		ConditionExpression: aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id":            "id",
			"#password_hash": "password_hash",
			"#reset_token":   "reset_token",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":hash": &types.AttributeValueMemberS{Value: passwordHash},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		return entities.User{}, err
	}

	var it userItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.User{}, err
	}
	return fromUserItem(it), nil
}

func (r *UserDynamoRepository) queryOne(ctx context.Context, index, attr, value string) (entities.User, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(index),
		KeyConditionExpression: aws.String("#attr = :value"),
		ExpressionAttributeNames: map[string]string{
			"#attr": attr,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":value": &types.AttributeValueMemberS{Value: value},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.User{}, err
	}
	if len(out.Items) == 0 {
		return entities.User{}, nil
	}

	var it userItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.User{}, err
	}
	return fromUserItem(it), nil
}

func toUserItem(user entities.User) userItem {
	return userItem{
		ID:                user.ID,
		Email:             user.Email,
		Name:              user.Name,
		PasswordHash:      user.PasswordHash,
		Role:              string(user.Role),
		EmailVerified:     user.EmailVerified,
		VerificationToken: user.VerificationToken,
		ResetToken:        user.ResetToken,
		CreatedAt:         formatTime(user.CreatedAt),
	}
}

func fromUserItem(it userItem) entities.User {
	return entities.User{
		ID:                it.ID,
		Email:             it.Email,
		Name:              it.Name,
		PasswordHash:      it.PasswordHash,
		Role:              entities.Role(it.Role),
		EmailVerified:     it.EmailVerified,
		VerificationToken: it.VerificationToken,
		ResetToken:        it.ResetToken,
		CreatedAt:         parseTime(it.CreatedAt),
	}
}
