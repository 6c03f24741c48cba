package receipt

import (
	"context"
	"fmt"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("MemoryDB", func() {
	var (
		db  *MemoryDB
		ctx context.Context
	)

	BeforeEach(func() {
		db = NewMemoryDB()
		ctx = context.Background()
	})

	Describe("GetReceipt", func() {
		When("receipt exists", func() {
			BeforeEach(func() {
				Expect(db.SaveReceipt(ctx, &Record{ID: "test-id", Receipt: targetReceipt()})).To(Succeed())
			})

			It("should return the stored receipt", func() {
				record, err := db.GetReceipt(ctx, "test-id")
				Expect(err).NotTo(HaveOccurred())
				Expect(record.Receipt).To(Equal(targetReceipt()))
			})

			It("should not let callers mutate the stored receipt", func() {
				record, err := db.GetReceipt(ctx, "test-id")
				Expect(err).NotTo(HaveOccurred())
				record.Receipt.Items[0].Price = "0.00"
				record.Receipt.Total = "0.00"

				again, err := db.GetReceipt(ctx, "test-id")
				Expect(err).NotTo(HaveOccurred())
				Expect(again.Receipt).To(Equal(targetReceipt()))
			})
		})

		When("receipt does not exist", func() {
			It("returns a not found error", func() {
				_, err := db.GetReceipt(ctx, "nonexistent")
				Expect(err).To(MatchError(ErrReceiptNotFound))
			})
		})
	})

	Describe("SaveReceipt", func() {
		It("should copy the record it is given", func() {
			record := &Record{ID: "test-id", Receipt: targetReceipt()}
			Expect(db.SaveReceipt(ctx, record)).To(Succeed())
			record.Receipt.Items[0].ShortDescription = "changed"

			stored, err := db.GetReceipt(ctx, "test-id")
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Receipt.Items[0].ShortDescription).To(Equal("Mountain Dew 12PK"))
		})

		It("should keep every record under concurrent writers", func() {
			var wg sync.WaitGroup
			for i := 0; i < 50; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					defer GinkgoRecover()
					id := fmt.Sprintf("id-%d", i)
					Expect(db.SaveReceipt(ctx, &Record{ID: id, Receipt: targetReceipt()})).To(Succeed())
					_, err := db.GetReceipt(ctx, id)
					Expect(err).NotTo(HaveOccurred())
				}(i)
			}
			wg.Wait()

			Expect(db.Len()).To(Equal(50))
		})
	})

	Describe("Close", func() {
		It("should not return an error", func() {
			Expect(db.Close()).To(Succeed())
		})
	})
})
