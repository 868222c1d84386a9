package errors

import "strings"

const (
	MsgCouponNotFound       = "coupon.not_found"
	MsgCouponInactive       = "coupon.inactive"
	MsgCouponNotYetValid    = "coupon.not_yet_valid"
	MsgCouponExpired        = "coupon.expired"
	MsgCouponUsageExhausted = "coupon.usage_exhausted"
	MsgCouponBelowMinimum   = "coupon.below_minimum"
	MsgCartEmpty            = "cart.empty"
	MsgCartLocked           = "cart.locked"
	MsgCartExpired          = "cart.expired"
	MsgTooManyAttempts      = "checkout.too_many_attempts"
	MsgGatewayUnavailable   = "gateway.unavailable"
	MsgGatewayUnreachable   = "gateway.unreachable"
	MsgPaymentNotConfirmed  = "payment.not_confirmed"
	MsgNothingToPay         = "payment.nothing_to_pay"

	DefaultLanguage = "en"
	persianLanguage = "fa"
)

var catalogue = map[string]map[string]string{
	MsgCouponNotFound: {
		"en": "Coupon code does not exist",
		"fa": "کد تخفیف وجود ندارد",
	},
	MsgCouponInactive: {
		"en": "Coupon is not active",
		"fa": "کد تخفیف فعال نیست",
	},
	MsgCouponNotYetValid: {
		"en": "Coupon is not valid yet",
		"fa": "زمان استفاده از کد تخفیف هنوز فرا نرسیده است",
	},
	MsgCouponExpired: {
		"en": "Coupon has expired",
		"fa": "کد تخفیف منقضی شده است",
	},
	MsgCouponUsageExhausted: {
		"en": "Coupon usage limit has been reached",
		"fa": "ظرفیت استفاده از کد تخفیف به پایان رسیده است",
	},
	MsgCouponBelowMinimum: {
		"en": "Cart total is below the coupon minimum purchase",
		"fa": "مبلغ سبد خرید کمتر از حداقل خرید برای این کد تخفیف است",
	},
	MsgCartEmpty: {
		"en": "Cart is empty",
		"fa": "سبد خرید خالی است",
	},
	MsgCartLocked: {
		"en": "Cart cannot be changed while a payment is in progress",
		"fa": "تا پایان پرداخت امکان تغییر سبد خرید وجود ندارد",
	},
	MsgCartExpired: {
		"en": "Cart has expired, please add the items again",
		"fa": "سبد خرید منقضی شده است، لطفا کالاها را دوباره اضافه کنید",
	},
	MsgTooManyAttempts: {
		"en": "Too many checkout attempts, please wait and try again",
		"fa": "تعداد تلاش‌های پرداخت زیاد است، لطفا کمی بعد دوباره تلاش کنید",
	},
	MsgGatewayUnavailable: {
		"en": "Selected payment method is currently unavailable",
		"fa": "درگاه پرداخت انتخاب شده در دسترس نیست",
	},
	MsgGatewayUnreachable: {
		"en": "Payment provider could not be reached, please try again",
		"fa": "ارتباط با درگاه پرداخت برقرار نشد، لطفا دوباره تلاش کنید",
	},
	MsgPaymentNotConfirmed: {
		"en": "Payment could not be confirmed",
		"fa": "پرداخت تایید نشد",
	},
	MsgNothingToPay: {
		"en": "There is nothing to pay for this cart",
		"fa": "مبلغی برای پرداخت وجود ندارد",
	},
}

// Localize returns the catalogue text for key in the first supported language
// of an Accept-Language style list, falling back to English.
func Localize(key, acceptLanguage string) (string, bool) {
	texts, ok := catalogue[key]
	if !ok {
		return "", false
	}

	lang := PreferredLanguage(acceptLanguage)
	if text, ok := texts[lang]; ok {
		return text, true
	}

	return texts[DefaultLanguage], true
}

func PreferredLanguage(acceptLanguage string) string {
	for _, part := range strings.Split(acceptLanguage, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		base := strings.ToLower(strings.SplitN(tag, "-", 2)[0])

		switch base {
		case DefaultLanguage, persianLanguage:
			return base
		}
	}

	return DefaultLanguage
}

// Localized builds a validation error whose message comes from the catalogue.
func Localized(key string) *AppError {
	message, _ := Localize(key, DefaultLanguage)

	return ValidationError(message).WithMessageKey(key)
}
