package catalog

import "github.com/nao1215/anyfix/internal/model"

// builtinFixes is the literal table behind Builtin. It is only read by
// Builtin, which copies it into an immutable catalog.
var builtinFixes = []model.FixRecord{
	// dashboard/bookings/page.tsx
	{
		File:   "apps/web/src/app/dashboard/bookings/page.tsx",
		Line:   18,
		Before: "  const [bookings, setBookings] = useState<any[]>([]);",
		After:  "  const [bookings, setBookings] = useState<Booking[]>([]);",
	},
	{
		File:   "apps/web/src/app/dashboard/bookings/page.tsx",
		Line:   23,
		Before: "  const [selectedBooking, setSelectedBooking] = useState<any>(null);",
		After:  "  const [selectedBooking, setSelectedBooking] = useState<Booking | null>(null);",
	},
	{
		File:   "apps/web/src/app/dashboard/bookings/page.tsx",
		Line:   26,
		Before: "  const [invoiceBooking, setInvoiceBooking] = useState<any>(null);",
		After:  "  const [invoiceBooking, setInvoiceBooking] = useState<Booking | null>(null);",
	},
	{
		File:   "apps/web/src/app/dashboard/bookings/page.tsx",
		Line:   29,
		Before: "  const [reviewBooking, setReviewBooking] = useState<any>(null);",
		After:  "  const [reviewBooking, setReviewBooking] = useState<Booking | null>(null);",
	},
	{
		File:   "apps/web/src/app/dashboard/bookings/page.tsx",
		Line:   50,
		Before: "  const openCancelModal = (booking: any) => {",
		After:  "  const openCancelModal = (booking: Booking) => {",
	},
	{
		File:   "apps/web/src/app/dashboard/bookings/page.tsx",
		Line:   55,
		Before: "  const openInvoiceModal = (booking: any) => {",
		After:  "  const openInvoiceModal = (booking: Booking) => {",
	},
	{
		File:   "apps/web/src/app/dashboard/bookings/page.tsx",
		Line:   60,
		Before: "  const openReviewModal = (booking: any) => {",
		After:  "  const openReviewModal = (booking: Booking) => {",
	},

	// dashboard/blogs/[id]/edit/page.tsx
	{
		File:   "apps/web/src/app/dashboard/blogs/[id]/edit/page.tsx",
		Line:   17,
		Before: "  const [coverImage, setCoverImage] = useState<any>(null);",
		After:  "  const [coverImage, setCoverImage] = useState<{ url: string; id: string } | null>(null);",
	},
	{
		File:   "apps/web/src/app/dashboard/blogs/[id]/edit/page.tsx",
		Line:   18,
		Before: "  const [content, setContent] = useState<any>(null);",
		After:  "  const [content, setContent] = useState<Record<string, any> | null>(null);",
	},

	// dashboard/blogs/new/page.tsx
	{
		File:   "apps/web/src/app/dashboard/blogs/new/page.tsx",
		Line:   16,
		Before: "  const [coverImage, setCoverImage] = useState<any>(null);",
		After:  "  const [coverImage, setCoverImage] = useState<{ url: string; id: string } | null>(null);",
	},
	{
		File:   "apps/web/src/app/dashboard/blogs/new/page.tsx",
		Line:   17,
		Before: "  const [content, setContent] = useState<any>(null);",
		After:  "  const [content, setContent] = useState<Record<string, any> | null>(null);",
	},
	{
		File:   "apps/web/src/app/dashboard/blogs/new/page.tsx",
		Line:   23,
		Before: "  const [tripDetails, setTripDetails] = useState<any>(null);",
		After:  "  const [tripDetails, setTripDetails] = useState<Trip | null>(null);",
	},
	{
		File:   "apps/web/src/app/dashboard/blogs/new/page.tsx",
		Line:   25,
		Before: "  const BLOG_TEMPLATES: Record<string, any> = {",
		After:  "  const BLOG_TEMPLATES: Record<string, Record<string, any>> = {",
	},

	// dashboard/guide/page.tsx
	{
		File:   "apps/web/src/app/dashboard/guide/page.tsx",
		Line:   20,
		Before: "  const [assignments, setAssignments] = useState<any[] | null>(null);",
		After:  "  const [assignments, setAssignments] = useState<Trip[] | null>(null);",
	},
	{
		File:   "apps/web/src/app/dashboard/guide/page.tsx",
		Line:   33,
		Before: "      } catch (err: any) {",
		After:  "      } catch (err) {",
	},
	{
		File:   "apps/web/src/app/dashboard/guide/page.tsx",
		Line:   79,
		Before: "          {assignments.map((trip: any) => (",
		After:  "          {assignments.map((trip: Trip) => (",
	},
	{
		File:   "apps/web/src/app/dashboard/guide/page.tsx",
		Line:   135,
		Before: "                    {trip.bookings?.map((booking: any) => (",
		After:  "                    {trip.bookings?.map((booking: Booking) => (",
	},

	// dashboard/manager/page.tsx
	{
		File:   "apps/web/src/app/dashboard/manager/page.tsx",
		Line:   12,
		Before: "  const [trips, setTrips] = useState<any[]>([]);",
		After:  "  const [trips, setTrips] = useState<Trip[]>([]);",
	},

	// dashboard/page.tsx
	{
		File:   "apps/web/src/app/dashboard/page.tsx",
		Line:   13,
		Before: "  const [blogs, setBlogs] = useState<any[]>([]);",
		After:  "  const [blogs, setBlogs] = useState<Blog[]>([]);",
	},

	// dashboard/profile/page.tsx
	{
		File:   "apps/web/src/app/dashboard/profile/page.tsx",
		Line:   35,
		Before: "  const [preferences, setPreferences] = useState<any>({});",
		After:  "  const [preferences, setPreferences] = useState<Record<string, any>>({});",
	},

	// dashboard/wishlist/page.tsx
	{
		File:   "apps/web/src/app/dashboard/wishlist/page.tsx",
		Line:   82,
		Before: "              trip={trip as any}",
		After:  "              trip={trip}",
	},

	// page.tsx (home page)
	{
		File:   "apps/web/src/app/page.tsx",
		Line:   114,
		Before: "        const categoryTrips = allTrips.filter(\n          (t: any) =>",
		After:  "        const categoryTrips = allTrips.filter(\n          (t: Trip) =>",
	},
	{
		File:   "apps/web/src/app/page.tsx",
		Line:   190,
		Before: "                {blogs.map((blog: any) => (",
		After:  "                {blogs.map((blog: Blog) => (",
	},

	// trips/[slug]/page.tsx
	{
		File:   "apps/web/src/app/trips/[slug]/page.tsx",
		Line:   36,
		Before: "      image: (trip as any).coverImage?.mediumUrl || \"/og-image.jpg\",",
		After:  "      image: trip.coverImage?.mediumUrl || \"/og-image.jpg\",",
	},
	{
		File:   "apps/web/src/app/trips/[slug]/page.tsx",
		Line:   179,
		Before: "                  {trip.gallery.map((item: any, i: number) => (",
		After:  "                  {trip.gallery.map((item: GalleryItem, i: number) => (",
	},

	// login/__tests__/page.test.tsx
	{
		File:   "apps/web/src/app/login/__tests__/page.test.tsx",
		Line:   32,
		Before: "  default: (props: any) => <img {...props} alt={props.alt} />,",
		After:  "  default: (props: ImageProps) => <img {...props} alt={props.alt} />,",
	},

	// my-bookings/page.tsx
	{
		File:   "apps/web/src/app/my-bookings/page.tsx",
		Line:   15,
		Before: "  const [bookings, setBookings] = useState<any[] | null>(null);",
		After:  "  const [bookings, setBookings] = useState<Booking[] | null>(null);",
	},

	// trips/[id]/edit/page.tsx
	{
		File:   "apps/web/src/app/trips/[id]/edit/page.tsx",
		Line:   13,
		Before: "  const [trip, setTrip] = useState<any>(null);",
		After:  "  const [trip, setTrip] = useState<Trip | null>(null);",
	},
}

// Builtin returns the built-in catalog of `any` type fixes for the web app.
// Every call returns the same records in the same order.
func Builtin() *model.Catalog {
	return model.MustNewCatalog(builtinFixes)
}
