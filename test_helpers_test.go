package zengin

import (
	"bytes"
	"encoding/binary"
	"hash/fnv"
	"math/rand/v2"
	"path/filepath"
	"reflect"
	"testing"
	"testing/fstest"
)

// Named seeds for deterministic reproduction.
const (
	testSeed1 = 0x1234567890ABCDEF
	testSeed2 = 0xFEDCBA9876543210
)

func newTestRNG(t testing.TB) *rand.Rand {
	t.Helper()
	h := fnv.New128a()
	h.Write([]byte(t.Name()))
	sum := h.Sum(nil)
	s1 := binary.LittleEndian.Uint64(sum[:8])
	s2 := binary.LittleEndian.Uint64(sum[8:])
	return rand.New(rand.NewPCG(testSeed1^s1, testSeed2^s2))
}

// fixtureFS returns a small dataset whose banks are deliberately not listed
// in code order.
func fixtureFS() fstest.MapFS {
	return fstest.MapFS{
		"banks.json": {Data: []byte(`{
			"0005": {"code": "0005", "name": "三菱ＵＦＪ", "kana": "ミツビシユ－エフジエイ", "hira": "みつびしゆ－えふじえい", "roma": "mitsubishiyu-efujiei"},
			"0289": {"code": "0289", "name": "みずほ信託", "kana": "ミズホシンタク", "hira": "みずほしんたく", "roma": "mizuhoshintaku"},
			"0001": {"code": "0001", "name": "みずほ", "kana": "ミズホ", "hira": "みずほ", "roma": "mizuho"}
		}`)},
		"branches/0005.json": {Data: []byte(`{
			"001": {"code": "001", "name": "本店", "kana": "ホンテン", "hira": "ほんてん", "roma": "honten"}
		}`)},
		"branches/0289.json": {Data: []byte(`{}`)},
		"branches/0001.json": {Data: []byte(`{
			"012": {"code": "012", "name": "東京中央", "kana": "トウキヨウチユウオウ", "hira": "とうきようちゆうおう", "roma": "toukiyouchiyuuou"},
			"001": {"code": "001", "name": "東京営業部", "kana": "トウキヨウ", "hira": "とうきよう", "roma": "toukiyou"},
			"009": {"code": "009", "name": "神田", "kana": "カンダ", "hira": "かんだ", "roma": "kanda"}
		}`)},
	}
}

// emptyDatasetFS returns a valid dataset with no banks.
func emptyDatasetFS() fstest.MapFS {
	return fstest.MapFS{"banks.json": {Data: []byte(`{}`)}}
}

// loadBundled loads the embedded dataset or fails the test.
func loadBundled(t testing.TB, opts ...Option) *Zengin {
	t.Helper()
	z, err := New(opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return z
}

// loadFixture loads fixtureFS or fails the test.
func loadFixture(t testing.TB, opts ...Option) *Zengin {
	t.Helper()
	z, err := NewFromFS(fixtureFS(), opts...)
	if err != nil {
		t.Fatalf("NewFromFS(fixture): %v", err)
	}
	return z
}

// snapshotBytes returns the snapshot image of z.
func snapshotBytes(t testing.TB, z *Zengin) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := z.WriteSnapshot(&buf); err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}
	return buf.Bytes()
}

// snapshotFile writes the snapshot of z into a temp dir and returns its path.
func snapshotFile(t testing.TB, z *Zengin) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "zengin.snap")
	if err := z.WriteSnapshotFile(path); err != nil {
		t.Fatalf("WriteSnapshotFile: %v", err)
	}
	return path
}

func bankCodes(banks []Bank) []string {
	codes := make([]string, len(banks))
	for i, b := range banks {
		codes[i] = b.Code
	}
	return codes
}

func branchCodes(branches []Branch) []string {
	codes := make([]string, len(branches))
	for i, b := range branches {
		codes[i] = b.Code
	}
	return codes
}

// assertSameContent checks that two registries hold the same banks and
// branches in the same order with the same names.
func assertSameContent(t *testing.T, want, got *Zengin) {
	t.Helper()
	if want.NumBanks() != got.NumBanks() || want.NumBranches() != got.NumBranches() {
		t.Fatalf("counts differ: want %d banks/%d branches, got %d/%d",
			want.NumBanks(), want.NumBranches(), got.NumBanks(), got.NumBranches())
	}
	if want.Fingerprint() != got.Fingerprint() {
		t.Errorf("fingerprint: want %s, got %s", want.Fingerprint(), got.Fingerprint())
	}
	wantBanks, gotBanks := want.Banks(), got.Banks()
	for i := range wantBanks {
		wb, gb := wantBanks[i], gotBanks[i]
		if wb.Code != gb.Code || wb.Names != gb.Names {
			t.Errorf("bank %d: want %s %+v, got %s %+v", i, wb.Code, wb.Names, gb.Code, gb.Names)
			continue
		}
		if !reflect.DeepEqual(wb.Branches(), gb.Branches()) {
			t.Errorf("bank %s: branches differ", wb.Code)
		}
	}
}
