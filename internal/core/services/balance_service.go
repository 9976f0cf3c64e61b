package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/finchbooks/finch/internal/core/domain"
	portsrepo "github.com/finchbooks/finch/internal/core/ports/repositories"
	portssvc "github.com/finchbooks/finch/internal/core/ports/services"
	"github.com/finchbooks/finch/internal/dto"
	"github.com/finchbooks/finch/internal/middleware"
	"github.com/finchbooks/finch/internal/utils/accounting"
	"github.com/finchbooks/finch/internal/utils/hierarchy"
)

// rawBalance is one account's memoized rollup for a (range, showHidden) key,
// in raw stored signs. Reversal and ordering are applied per call on top.
type rawBalance struct {
	ownTotal         domain.Numeric
	ownPeriod        domain.Numeric
	aggregatedTotal  domain.Numeric
	aggregatedPeriod domain.Numeric
}

// BalanceService computes the hierarchical balance rollup: one bottom-up
// recursive pass over the account tree, memoized per (range, showHidden)
// query, dropped whenever any transaction write commits.
type BalanceService struct {
	accountRepo  portsrepo.AccountRepositoryFacade
	txnRepo      portsrepo.TransactionReader
	commoditySvc portssvc.CommoditySvcFacade

	mu    sync.Mutex
	cache map[string]map[string]rawBalance // query key -> account ID -> balances
}

// NewBalanceService creates a new BalanceService.
func NewBalanceService(accountRepo portsrepo.AccountRepositoryFacade, txnRepo portsrepo.TransactionReader, commoditySvc portssvc.CommoditySvcFacade) *BalanceService {
	return &BalanceService{
		accountRepo:  accountRepo,
		txnRepo:      txnRepo,
		commoditySvc: commoditySvc,
		cache:        make(map[string]map[string]rawBalance),
	}
}

var _ portssvc.BalanceSvcFacade = (*BalanceService)(nil)
var _ portssvc.BalanceInvalidator = (*BalanceService)(nil)

// InvalidateBalances drops every memoized rollup. Called by writers after
// any committed change to transactions or splits.
func (s *BalanceService) InvalidateBalances() {
	s.mu.Lock()
	s.cache = make(map[string]map[string]rawBalance)
	s.mu.Unlock()
}

func cacheKey(start, end time.Time, showHidden bool) string {
	return fmt.Sprintf("%s|%s|%t", start.Format("2006-01-02"), end.Format("2006-01-02"), showHidden)
}

// AccountTreeBalances computes the rollup for a query.
func (s *BalanceService) AccountTreeBalances(ctx context.Context, query dto.BalanceQuery) (*dto.BalanceReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	start := truncateToDate(query.StartDate)
	end := truncateToDate(query.EndDate)
	if !start.IsZero() && end.Before(start) {
		return nil, fmt.Errorf("balance range end %s precedes start %s", end.Format("2006-01-02"), start.Format("2006-01-02"))
	}

	reversal := accounting.BalanceReversal(query.Reversal)
	if query.Reversal == "" {
		reversal = accounting.ReversalNone
	}
	sortKey := hierarchy.SortKey(query.SortBy)
	if query.SortBy == "" {
		sortKey = hierarchy.SortByName
	}

	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	byID := make(map[string]domain.Account, len(accounts))
	children := make(map[string][]domain.Account)
	var roots []domain.Account
	for _, acc := range accounts {
		byID[acc.AccountID] = acc
	}
	for _, acc := range accounts {
		if acc.AccountType == domain.Root {
			continue
		}
		if parent, ok := byID[acc.ParentAccountID]; ok && parent.AccountType != domain.Root {
			children[acc.ParentAccountID] = append(children[acc.ParentAccountID], acc)
		} else {
			roots = append(roots, acc)
		}
	}

	balances, err := s.rollup(ctx, byID, children, roots, start, end, query.ShowHidden)
	if err != nil {
		return nil, err
	}

	fractions, err := s.commodityFractions(ctx, accounts)
	if err != nil {
		return nil, err
	}

	report := &dto.BalanceReport{
		StartDate: start,
		EndDate:   end,
		Accounts:  s.render(roots, children, balances, byID, reversal, sortKey, query.ShowHidden, fractions),
	}
	logger.Debug("Balance report computed", slog.Int("accounts", len(accounts)))
	return report, nil
}

// rollup returns the memoized balances for the query, computing them with a
// single bottom-up pass on miss. The account tree is acyclic by construction,
// so the recursion terminates.
func (s *BalanceService) rollup(ctx context.Context, byID map[string]domain.Account, children map[string][]domain.Account, roots []domain.Account, start, end time.Time, showHidden bool) (map[string]rawBalance, error) {
	key := cacheKey(start, end, showHidden)

	s.mu.Lock()
	if cached, ok := s.cache[key]; ok {
		s.mu.Unlock()
		return cached, nil
	}
	s.mu.Unlock()

	accountIDs := make([]string, 0, len(byID))
	for id := range byID {
		accountIDs = append(accountIDs, id)
	}
	splitsByAccount, err := s.txnRepo.FindSplitsByAccountIDs(ctx, accountIDs, end)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch splits for balance rollup: %w", err)
	}

	balances := make(map[string]rawBalance, len(byID))
	var walk func(acc domain.Account) rawBalance
	walk = func(acc domain.Account) rawBalance {
		var b rawBalance
		b.ownTotal = domain.ZeroNumeric(0)
		b.ownPeriod = domain.ZeroNumeric(0)
		for _, sp := range splitsByAccount[acc.AccountID] {
			b.ownTotal = b.ownTotal.Add(sp.Quantity)
			if start.IsZero() || !sp.PostDate.Before(start) {
				b.ownPeriod = b.ownPeriod.Add(sp.Quantity)
			}
		}
		b.aggregatedTotal = b.ownTotal
		b.aggregatedPeriod = b.ownPeriod
		for _, child := range children[acc.AccountID] {
			cb := walk(child)
			if hierarchy.IsVisible(child, showHidden) {
				b.aggregatedTotal = b.aggregatedTotal.Add(cb.aggregatedTotal)
				b.aggregatedPeriod = b.aggregatedPeriod.Add(cb.aggregatedPeriod)
			}
		}
		balances[acc.AccountID] = b
		return b
	}
	for _, root := range roots {
		walk(root)
	}

	s.mu.Lock()
	s.cache[key] = balances
	s.mu.Unlock()
	return balances, nil
}

// commodityFractions maps each referenced commodity to its fraction so
// rendered amounts carry the right number of decimal places.
func (s *BalanceService) commodityFractions(ctx context.Context, accounts []domain.Account) (map[string]int32, error) {
	fractions := make(map[string]int32)
	for _, acc := range accounts {
		if _, ok := fractions[acc.CommodityCode]; ok {
			continue
		}
		com, err := s.commoditySvc.GetCommodityByCode(ctx, acc.CommodityCode)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch commodity %s: %w", acc.CommodityCode, err)
		}
		fractions[com.Code] = com.Fraction
	}
	return fractions, nil
}

// balanceView adapts a rollup for hierarchy.Less balance-keyed ordering.
type balanceView map[string]rawBalance

func (v balanceView) TotalOf(accountID string) domain.Numeric {
	return v[accountID].aggregatedTotal
}

func (v balanceView) PeriodOf(accountID string) domain.Numeric {
	return v[accountID].aggregatedPeriod
}

// render builds the response tree, applying visibility, ordering, and the
// presentation reversal at this boundary only.
func (s *BalanceService) render(siblings []domain.Account, children map[string][]domain.Account, balances map[string]rawBalance, byID map[string]domain.Account, reversal accounting.BalanceReversal, sortKey hierarchy.SortKey, showHidden bool, fractions map[string]int32) []dto.AccountBalanceNode {
	visible := make([]domain.Account, 0, len(siblings))
	for _, acc := range siblings {
		if hierarchy.IsVisible(acc, showHidden) {
			visible = append(visible, acc)
		}
	}
	sort.SliceStable(visible, func(i, j int) bool {
		return hierarchy.Less(visible[i], visible[j], sortKey, balanceView(balances))
	})

	nodes := make([]dto.AccountBalanceNode, 0, len(visible))
	for _, acc := range visible {
		b := balances[acc.AccountID]
		fraction := fractions[acc.CommodityCode]
		nodes = append(nodes, dto.AccountBalanceNode{
			AccountID:        acc.AccountID,
			Name:             acc.Name,
			AccountType:      string(acc.AccountType),
			CommodityCode:    acc.CommodityCode,
			OwnTotal:         displayAt(b.ownTotal, fraction, acc.AccountType, reversal),
			OwnPeriod:        displayAt(b.ownPeriod, fraction, acc.AccountType, reversal),
			AggregatedTotal:  displayAt(b.aggregatedTotal, fraction, acc.AccountType, reversal),
			AggregatedPeriod: displayAt(b.aggregatedPeriod, fraction, acc.AccountType, reversal),
			Children:         s.render(children[acc.AccountID], children, balances, byID, reversal, sortKey, showHidden, fractions),
		})
	}
	return nodes
}

func displayAt(n domain.Numeric, fraction int32, accountType domain.AccountType, reversal accounting.BalanceReversal) string {
	shown := accounting.DisplayAmount(n, accountType, reversal)
	return shown.Decimal().StringFixed(fraction)
}
