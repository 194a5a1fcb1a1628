package policy_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/rlenv/internal/dynamo"
	"github.com/san-kum/rlenv/internal/policy"
)

var _ = Describe("ParseKey", func() {
	It("reads a python tuple repr", func() {
		k, err := policy.ParseKey("(3, 10, 5, 1, -1)")
		Expect(err).NotTo(HaveOccurred())
		Expect(k).To(Equal(policy.Key{Paddle: 3, BallX: 10, BallY: 5, DX: 1, DY: -1}))
	})

	It("tolerates missing and extra whitespace", func() {
		a, err := policy.ParseKey("  (3,10,5,1,-1) ")
		Expect(err).NotTo(HaveOccurred())
		b, err := policy.ParseKey("( 3 , 10 , 5 , 1 , -1 )")
		Expect(err).NotTo(HaveOccurred())
		Expect(a).To(Equal(b))
	})

	It("round-trips through String", func() {
		k := policy.Key{Paddle: 29, BallX: 0, BallY: 39, DX: -1, DY: 1}
		parsed, err := policy.ParseKey(k.String())
		Expect(err).NotTo(HaveOccurred())
		Expect(parsed).To(Equal(k))
	})

	DescribeTable("rejects malformed text",
		func(text string) {
			_, err := policy.ParseKey(text)
			Expect(err).To(HaveOccurred())
		},
		Entry("bare list", "3, 10, 5, 1, -1"),
		Entry("brackets", "[3, 10, 5, 1, -1]"),
		Entry("too few fields", "(3, 10, 5, 1)"),
		Entry("too many fields", "(3, 10, 5, 1, -1, 0)"),
		Entry("float field", "(3.5, 10, 5, 1, -1)"),
		Entry("expression", "(__import__('os'), 10, 5, 1, -1)"),
		Entry("empty field", "(3, , 5, 1, -1)"),
		Entry("zero velocity sign", "(3, 10, 5, 0, -1)"),
		Entry("velocity magnitude", "(3, 10, 5, 1, 5)"),
		Entry("negative bin", "(-1, 10, 5, 1, -1)"),
	)
})

var _ = Describe("Decode", func() {
	It("builds a table keyed by tuple value", func() {
		t, err := policy.Decode(strings.NewReader(`{"(0, 1, 2, 1, 1)": -1, "(0, 1, 2, -1, 1)": 1, "(4,4,4,1,-1)": 0}`))
		Expect(err).NotTo(HaveOccurred())
		Expect(t.Len()).To(Equal(3))

		a, ok := t.Lookup(policy.Key{Paddle: 0, BallX: 1, BallY: 2, DX: 1, DY: 1})
		Expect(ok).To(BeTrue())
		Expect(a).To(Equal(policy.MoveUp))
		Expect(t.ActionFor(policy.Key{Paddle: 4, BallX: 4, BallY: 4, DX: 1, DY: -1})).To(Equal(policy.Stay))
	})

	It("defaults unseen states to Stay", func() {
		t, err := policy.Decode(strings.NewReader(`{"(0, 1, 2, 1, 1)": 1}`))
		Expect(err).NotTo(HaveOccurred())
		_, ok := t.Lookup(policy.Key{Paddle: 9, BallX: 9, BallY: 9, DX: 1, DY: 1})
		Expect(ok).To(BeFalse())
		Expect(t.ActionFor(policy.Key{Paddle: 9, BallX: 9, BallY: 9, DX: 1, DY: 1})).To(Equal(policy.Stay))
	})

	It("accepts an empty object", func() {
		t, err := policy.Decode(strings.NewReader(`{}`))
		Expect(err).NotTo(HaveOccurred())
		Expect(t.Len()).To(BeZero())
	})

	It("accepts equivalent spellings with the same action", func() {
		t, err := policy.Decode(strings.NewReader(`{"(1, 2, 3, 1, 1)": 1, "(1,2,3,1,1)": 1}`))
		Expect(err).NotTo(HaveOccurred())
		Expect(t.Len()).To(Equal(1))
	})

	DescribeTable("fails with ErrPolicyLoad",
		func(doc string) {
			_, err := policy.Decode(strings.NewReader(doc))
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, dynamo.ErrPolicyLoad)).To(BeTrue())
		},
		Entry("invalid json", `{"(1, 2, 3, 1, 1)": `),
		Entry("json null", `null`),
		Entry("json array", `[1, 2]`),
		Entry("malformed key", `{"1, 2, 3, 1, 1": 0}`),
		Entry("action out of set", `{"(1, 2, 3, 1, 1)": 2}`),
		Entry("fractional action", `{"(1, 2, 3, 1, 1)": 0.5}`),
		Entry("string action", `{"(1, 2, 3, 1, 1)": "up"}`),
		Entry("conflicting spellings", `{"(1, 2, 3, 1, 1)": 1, "(1,2,3,1,1)": -1}`),
		Entry("repeated key", `{"(1, 2, 3, 1, -1)": 1, "(1, 2, 3, 1, -1)": -1}`),
		Entry("repeated key with the same action", `{"(1, 2, 3, 1, -1)": 1, "(1, 2, 3, 1, -1)": 1}`),
		Entry("trailing garbage", `{"(1, 2, 3, 1, -1)": 1} this is not json`),
		Entry("second object", `{"(1, 2, 3, 1, -1)": 1} {}`),
		Entry("unterminated object", `{"(1, 2, 3, 1, -1)": 1`),
		Entry("empty input", ``),
	)

	It("accepts trailing whitespace", func() {
		t, err := policy.Decode(strings.NewReader("{\"(1, 2, 3, 1, -1)\": 1}\n\n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(t.Len()).To(Equal(1))
	})

	It("names a repeated key", func() {
		_, err := policy.Decode(strings.NewReader(`{"(1, 2, 3, 1, -1)": 1, "(1, 2, 3, 1, -1)": -1}`))
		var le *policy.LoadError
		Expect(errors.As(err, &le)).To(BeTrue())
		Expect(le.Key).To(Equal("(1, 2, 3, 1, -1)"))
	})

	It("names the offending entry", func() {
		_, err := policy.Decode(strings.NewReader(`{"(1, 2, 3, 1, 1)": 7}`))
		var le *policy.LoadError
		Expect(errors.As(err, &le)).To(BeTrue())
		Expect(le.Key).To(Equal("(1, 2, 3, 1, 1)"))
	})
})

var _ = Describe("Load", func() {
	It("reads a file from disk", func() {
		path := filepath.Join(GinkgoT().TempDir(), "policy.json")
		Expect(os.WriteFile(path, []byte(`{"(0, 0, 0, 1, 1)": 1}`), 0o644)).To(Succeed())

		t, err := policy.Load(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(t.ActionFor(policy.Key{DX: 1, DY: 1})).To(Equal(policy.MoveDown))
	})

	It("reports unreadable files as ErrPolicyLoad", func() {
		_, err := policy.Load(filepath.Join(GinkgoT().TempDir(), "missing.json"))
		Expect(errors.Is(err, dynamo.ErrPolicyLoad)).To(BeTrue())
		Expect(errors.Is(err, os.ErrNotExist)).To(BeTrue())
	})
})

var _ = Describe("Table", func() {
	It("rejects invalid entries on construction", func() {
		_, err := policy.NewTable(map[policy.Key]policy.Action{{DX: 1, DY: 1}: 3})
		Expect(errors.Is(err, dynamo.ErrPolicyLoad)).To(BeTrue())

		_, err = policy.NewTable(map[policy.Key]policy.Action{{DX: 0, DY: 1}: 0})
		Expect(errors.Is(err, dynamo.ErrPolicyLoad)).To(BeTrue())
	})

	It("validates bins against a game's bin counts", func() {
		t, err := policy.NewTable(map[policy.Key]policy.Action{{Paddle: 29, BallX: 49, BallY: 39, DX: 1, DY: 1}: 1})
		Expect(err).NotTo(HaveOccurred())
		Expect(t.Validate(policy.Bins{Paddle: 30, BallX: 50, BallY: 40})).To(Succeed())

		err = t.Validate(policy.Bins{Paddle: 30, BallX: 50, BallY: 39})
		Expect(errors.Is(err, dynamo.ErrPolicyLoad)).To(BeTrue())
	})

	It("does not alias the caller's map", func() {
		entries := map[policy.Key]policy.Action{{DX: 1, DY: 1}: policy.MoveUp}
		t, err := policy.NewTable(entries)
		Expect(err).NotTo(HaveOccurred())
		entries[policy.Key{DX: 1, DY: 1}] = policy.MoveDown
		Expect(t.ActionFor(policy.Key{DX: 1, DY: 1})).To(Equal(policy.MoveUp))
	})

	It("sorts keys and counts actions", func() {
		t, err := policy.NewTable(map[policy.Key]policy.Action{
			{Paddle: 2, DX: 1, DY: 1}:  policy.MoveUp,
			{Paddle: 1, DX: 1, DY: 1}:  policy.MoveUp,
			{Paddle: 1, DX: -1, DY: 1}: policy.Stay,
		})
		Expect(err).NotTo(HaveOccurred())
		keys := t.Keys()
		Expect(keys).To(HaveLen(3))
		Expect(keys[0]).To(Equal(policy.Key{Paddle: 1, DX: -1, DY: 1}))
		Expect(keys[2].Paddle).To(Equal(2))
		Expect(t.Stats()).To(Equal(map[policy.Action]int{policy.MoveUp: 2, policy.Stay: 1, policy.MoveDown: 0}))
	})
})
