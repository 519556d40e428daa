//go:build integration

package postgres

import (
	"strings"
	"time"

	"github.com/goodnatureofminers/hydrawatch/internal/hydra/model"
)

func (s *RepositorySuite) TestIngestIsIdempotent() {
	addr := s.createAddress(strings.Repeat("a1", 20), model.AddressNative)

	first := s.storeBlock(1000, strings.Repeat("ab", 32), addr, true)
	second := s.storeBlock(1000, strings.Repeat("ab", 32), addr, true)

	s.Equal(first, second)
	s.Equal(int64(1), s.count("blocks"))
	s.Equal(int64(1), s.count("transactions"))
	s.Equal(int64(1), s.count("address_transactions"))
}

func (s *RepositorySuite) TestCursor() {
	_, err := s.repo.Cursor(s.testCtx)
	s.ErrorIs(err, model.ErrNotFound)
	_, err = s.repo.MaxBlock(s.testCtx)
	s.ErrorIs(err, model.ErrNotFound)

	addr := s.createAddress(strings.Repeat("a2", 20), model.AddressNative)
	s.storeBlock(10, strings.Repeat("01", 32), addr, false)
	s.Require().NoError(s.repo.SaveCursor(s.testCtx, model.Cursor{Height: 12, Hash: "head"}))

	cursor, err := s.repo.Cursor(s.testCtx)
	s.Require().NoError(err)
	s.Equal(model.Cursor{Height: 12, Hash: "head"}, cursor)

	maxBlock, err := s.repo.MaxBlock(s.testCtx)
	s.Require().NoError(err)
	s.Equal(uint64(10), maxBlock.Height)
}

func (s *RepositorySuite) TestTrackedAddressesMatchBothForms() {
	user, err := s.repo.CreateUser(s.testCtx, 42, "")
	s.Require().NoError(err)
	tracked := s.createAddress(strings.Repeat("b1", 20), model.AddressNative)
	s.subscribe(user, tracked)
	s.createAddress(strings.Repeat("b2", 20), model.AddressNative)

	byNative, err := s.repo.TrackedAddresses(s.testCtx, []string{tracked.Native, "Hnobody"})
	s.Require().NoError(err)
	s.Require().Len(byNative, 1)
	s.Equal(tracked.ID, byNative[0].ID)

	byHex, err := s.repo.TrackedAddresses(s.testCtx, []string{strings.ToUpper(tracked.Hex), strings.Repeat("b2", 20)})
	s.Require().NoError(err)
	s.Require().Len(byHex, 1, "unsubscribed addresses are not tracked")
	s.Equal(int64(1), byHex[0].SubscriberCount)
}

func (s *RepositorySuite) TestMinedBlocksAt() {
	miner := s.createAddress(strings.Repeat("c1", 20), model.AddressNative)
	s.storeBlock(2000, strings.Repeat("cd", 32), miner, true)
	s.storeBlock(2001, strings.Repeat("ce", 32), miner, false)

	blocks, err := s.repo.MinedBlocksAt(s.testCtx, 2000, strings.Repeat("cd", 32))
	s.Require().NoError(err)
	s.Require().Len(blocks, 1)
	s.Equal(miner.ID, blocks[0].Miner.ID)
	s.Equal(int64(206*model.Coin), blocks[0].Block.Reward)
	s.Require().Len(blocks[0].Block.Transactions, 1)
	s.Equal(int64(706*model.Coin), blocks[0].Block.Transactions[0].Outputs[1].Value)

	none, err := s.repo.MinedBlocksAt(s.testCtx, 2001, strings.Repeat("ce", 32))
	s.Require().NoError(err)
	s.Empty(none)
}

func (s *RepositorySuite) TestMinedBlocksAtSkipsOrphans() {
	miner := s.createAddress(strings.Repeat("c2", 20), model.AddressNative)
	orphan := strings.Repeat("e1", 32)
	canonical := strings.Repeat("e2", 32)
	s.storeBlock(3000, orphan, miner, true)
	s.storeBlock(3000, canonical, miner, true)

	blocks, err := s.repo.MinedBlocksAt(s.testCtx, 3000, canonical)
	s.Require().NoError(err)
	s.Require().Len(blocks, 1)
	s.Equal(canonical, blocks[0].Block.Hash)

	gone, err := s.repo.MinedBlocksAt(s.testCtx, 3000, strings.Repeat("e3", 32))
	s.Require().NoError(err)
	s.Empty(gone, "neither stored block is on the current chain")
}

func (s *RepositorySuite) TestUpdateAddressInfoAndRecordMinedBlock() {
	user, err := s.repo.CreateUser(s.testCtx, 7, "EUR")
	s.Require().NoError(err)
	addr := s.createAddress(strings.Repeat("d1", 20), model.AddressNative)
	s.subscribe(user, addr)

	info := model.AccountInfo{Balance: 706 * model.Coin, Staking: 706 * model.Coin, BlocksMined: 1}
	s.Require().NoError(s.repo.UpdateAddressInfo(s.testCtx, addr.ID, info, 1000))
	s.Require().NoError(s.repo.UpdateAddressInfo(s.testCtx, addr.ID, info, 999))
	earlier := time.Unix(1_699_990_000, 0).UTC()
	at := time.Unix(1_700_000_000, 0).UTC()
	prev, err := s.repo.RecordMinedBlock(s.testCtx, addr.ID, earlier)
	s.Require().NoError(err)
	s.Nil(prev, "first mined block has no predecessor")
	prev, err = s.repo.RecordMinedBlock(s.testCtx, addr.ID, at)
	s.Require().NoError(err)
	s.Require().NotNil(prev)
	s.True(prev.Equal(earlier))

	stored, err := s.repo.AddressByHex(s.testCtx, addr.Hex)
	s.Require().NoError(err)
	s.Equal(info, stored.Info)
	s.Equal(uint64(1000), stored.Height)

	subs, err := s.repo.Subscribers(s.testCtx, []string{addr.Hex})
	s.Require().NoError(err)
	s.Require().Len(subs, 1)
	s.Equal(int64(2), subs[0].Subscription.BlockCount)
	s.Require().NotNil(subs[0].Subscription.LastBlockAt)
	s.True(subs[0].Subscription.LastBlockAt.Equal(at))
	s.Equal("EUR", subs[0].Subscription.User.Fiat)
}
