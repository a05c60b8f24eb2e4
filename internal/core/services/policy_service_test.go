package services_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/coopec-dev/coopec_backend/internal/apperrors"
	"github.com/coopec-dev/coopec_backend/internal/core/domain"
	portsrepo "github.com/coopec-dev/coopec_backend/internal/core/ports/repositories"
	portssvc "github.com/coopec-dev/coopec_backend/internal/core/ports/services"
	"github.com/coopec-dev/coopec_backend/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// storedPolicyValues is a complete, consistent parameter set as the
// bootstrap would leave it.
func storedPolicyValues() []portsrepo.PolicyValue {
	raw := map[string]string{
		domain.ParamMinWithdrawalFC:  `"1000"`,
		domain.ParamMinWithdrawalUSD: `"5"`,
		domain.ParamMaxWithdrawalFC:  `"5000000"`,
		domain.ParamMaxWithdrawalUSD: `"2000"`,
		domain.ParamDailyCeilingFC:   `"10000000"`,
		domain.ParamDailyCeilingUSD:  `"5000"`,
		domain.ParamMinBalanceFC:     `"5000"`,
		domain.ParamMinBalanceUSD:    `"5"`,
		domain.ParamAllowedHours:     `{"start":8,"end":22}`,
		domain.ParamFeeTiersFC:       `[{"max":"110865","rate":"3"},{"max":"443460","rate":"2.5"},{"max":null,"rate":"2"}]`,
		domain.ParamFeeTiersUSD:      `[{"max":"50","rate":"3"},{"max":"200","rate":"2.5"},{"max":null,"rate":"2"}]`,
	}
	values := make([]portsrepo.PolicyValue, 0, len(raw))
	for name, v := range raw {
		values = append(values, portsrepo.PolicyValue{Name: name, Value: json.RawMessage(v), Version: 1})
	}
	return values
}

type PolicyServiceTestSuite struct {
	suite.Suite
	mockRepo *MockPolicyRepository
	service  portssvc.PolicySvcFacade
}

func (suite *PolicyServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockPolicyRepository)
	suite.service = services.NewPolicyService(suite.mockRepo)
}

func (suite *PolicyServiceTestSuite) TestBootstrap_SeedsEveryParameter() {
	ctx := context.Background()
	suite.mockRepo.On("SeedPolicyValue", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("json.RawMessage")).Return(nil).Times(11)

	err := suite.service.Bootstrap(ctx)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PolicyServiceTestSuite) TestGetPolicy_AssemblesSnapshot() {
	ctx := context.Background()
	suite.mockRepo.On("GetPolicyValues", ctx).Return(storedPolicyValues(), nil).Once()

	policy, err := suite.service.GetPolicy(ctx)

	suite.Require().NoError(err)
	suite.True(policy.MinWithdrawal[domain.CurrencyFC].Equal(decimal.RequireFromString("1000")))
	suite.True(policy.MaxWithdrawal[domain.CurrencyUSD].Equal(decimal.RequireFromString("2000")))
	suite.Equal(8, policy.AllowedHours.Start)
	suite.Equal(22, policy.AllowedHours.End)
	suite.Len(policy.FeeTiers[domain.CurrencyFC], 3)
	suite.Nil(policy.FeeTiers[domain.CurrencyFC][2].Max)
	suite.Equal(int64(1), policy.Version)
}

func (suite *PolicyServiceTestSuite) TestGetPolicy_MissingParameterIsIntegrityError() {
	ctx := context.Background()
	// Drop one parameter; the snapshot must refuse to assemble rather than
	// fall back to a default.
	values := storedPolicyValues()
	trimmed := make([]portsrepo.PolicyValue, 0, len(values)-1)
	for _, v := range values {
		if v.Name == domain.ParamFeeTiersUSD {
			continue
		}
		trimmed = append(trimmed, v)
	}
	suite.mockRepo.On("GetPolicyValues", ctx).Return(trimmed, nil).Once()

	_, err := suite.service.GetPolicy(ctx)

	suite.Require().ErrorIs(err, apperrors.ErrIntegrity)
}

func (suite *PolicyServiceTestSuite) TestUpdateValue_UnknownNameIsNotFound() {
	_, err := suite.service.UpdateValue(context.Background(), "noSuchParameter", []byte(`"1"`))

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdatePolicyValue", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PolicyServiceTestSuite) TestUpdateValue_RejectsMalformedShape() {
	_, err := suite.service.UpdateValue(context.Background(), domain.ParamAllowedHours, []byte(`{"start":25,"end":3}`))

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PolicyServiceTestSuite) TestUpdateValue_RejectsNegativeLimit() {
	_, err := suite.service.UpdateValue(context.Background(), domain.ParamMinWithdrawalFC, []byte(`"-5"`))

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PolicyServiceTestSuite) TestUpdateValue_RejectsUnboundedTierNotLast() {
	_, err := suite.service.UpdateValue(context.Background(), domain.ParamFeeTiersFC, []byte(`[{"max":null,"rate":"2"},{"max":"100","rate":"3"}]`))

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PolicyServiceTestSuite) TestUpdateValue_WritesAndReturnsSnapshot() {
	ctx := context.Background()
	newVal := []byte(`"2000"`)
	suite.mockRepo.On("UpdatePolicyValue", ctx, domain.ParamMinWithdrawalFC, json.RawMessage(newVal)).Return(nil).Once()

	values := storedPolicyValues()
	for i := range values {
		if values[i].Name == domain.ParamMinWithdrawalFC {
			values[i].Value = json.RawMessage(newVal)
			values[i].Version = 2
		}
	}
	suite.mockRepo.On("GetPolicyValues", ctx).Return(values, nil).Once()

	policy, err := suite.service.UpdateValue(ctx, domain.ParamMinWithdrawalFC, newVal)

	suite.Require().NoError(err)
	suite.True(policy.MinWithdrawal[domain.CurrencyFC].Equal(decimal.RequireFromString("2000")))
	suite.Equal(int64(2), policy.Version)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PolicyServiceTestSuite) TestUpdateValue_UnseededNameSurfacesNotFound() {
	ctx := context.Background()
	suite.mockRepo.On("UpdatePolicyValue", ctx, domain.ParamMinBalanceUSD, mock.AnythingOfType("json.RawMessage")).Return(apperrors.ErrNotFound).Once()

	_, err := suite.service.UpdateValue(ctx, domain.ParamMinBalanceUSD, []byte(`"10"`))

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func TestPolicyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PolicyServiceTestSuite))
}
