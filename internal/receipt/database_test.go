package receipt

import (
	"context"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("BoltDB", func() {
	var (
		tmpDir string
		dbPath string
		db     *BoltDB
		ctx    context.Context
	)

	BeforeEach(func() {
		tmpDir = GinkgoT().TempDir()
		dbPath = filepath.Join(tmpDir, "test.db")
		var err error
		db, err = NewBoltDB(dbPath)
		Expect(err).NotTo(HaveOccurred())
		ctx = context.Background()
	})

	AfterEach(func() {
		if db != nil {
			db.Close()
		}
	})

	Describe("SaveReceipt", func() {
		var (
			record *Record
			err    error
		)

		BeforeEach(func() {
			record = &Record{
				ID:        "test-id",
				Receipt:   targetReceipt(),
				CreatedAt: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			}
		})

		JustBeforeEach(func() {
			err = db.SaveReceipt(ctx, record)
		})

		When("saving succeeds", func() {
			It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			It("should save the receipt to the database", func() {
				saved, getErr := db.GetReceipt(ctx, "test-id")
				Expect(getErr).NotTo(HaveOccurred())
				Expect(saved.ID).To(Equal("test-id"))
			})
		})

		When("the context is cancelled", func() {
			BeforeEach(func() {
				var cancel context.CancelFunc
				ctx, cancel = context.WithCancel(ctx)
				cancel()
			})

			It("returns the context error", func() {
				Expect(err).To(MatchError(context.Canceled))
			})
		})
	})

	Describe("GetReceipt", func() {
		var (
			receiptID string
			record    *Record
			err       error
		)

		JustBeforeEach(func() {
			record, err = db.GetReceipt(ctx, receiptID)
		})

		When("receipt exists", func() {
			BeforeEach(func() {
				receiptID = "test-id"
				Expect(db.SaveReceipt(ctx, &Record{
					ID:        "test-id",
					Receipt:   targetReceipt(),
					CreatedAt: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
				})).To(Succeed())
			})

			It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			It("should return the stored receipt verbatim", func() {
				Expect(record.Receipt).To(Equal(targetReceipt()))
			})

			It("should return the creation time", func() {
				Expect(record.CreatedAt.Equal(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))).To(BeTrue())
			})
		})

		When("receipt does not exist", func() {
			BeforeEach(func() {
				receiptID = "nonexistent"
			})

			It("returns a not found error", func() {
				Expect(err).To(MatchError(ErrReceiptNotFound))
			})

			It("names the ID", func() {
				Expect(err).To(MatchError("receipt not found: nonexistent"))
			})
		})
	})

	Describe("reopening the file", func() {
		It("should keep saved receipts", func() {
			Expect(db.SaveReceipt(ctx, &Record{ID: "kept", Receipt: targetReceipt()})).To(Succeed())
			Expect(db.Close()).To(Succeed())

			var err error
			db, err = NewBoltDB(dbPath)
			Expect(err).NotTo(HaveOccurred())

			record, err := db.GetReceipt(ctx, "kept")
			Expect(err).NotTo(HaveOccurred())
			Expect(record.Receipt.Retailer).To(Equal("Target"))
		})
	})

	Describe("Close", func() {
		It("should not return an error", func() {
			err := db.Close()
			Expect(err).NotTo(HaveOccurred())
			db = nil
		})
	})
})
